// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"wagate-server/commons"
	"wagate-server/handlers"
	"wagate-server/middlewares"
	"wagate-server/models"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering v1 routes")
	api_v1 := e.Group("/v1")

	sessionAuth := middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession)
	anyAuth := middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey)

	api_v1.POST("/auth/signup", handlers.SignupHandler)
	api_v1.POST("/auth/login", handlers.LoginHandler)
	api_v1.POST("/auth/logout", handlers.LogoutHandler, sessionAuth)

	api_v1.GET("/users/", handlers.GetUserHandler, sessionAuth)
	api_v1.DELETE("/users/", handlers.DeleteAccountHandler, sessionAuth)
	api_v1.PUT("/users/password", handlers.ChangePasswordHandler, sessionAuth)

	api_v1.POST("/api-keys", handlers.CreateAPIKeyHandler, sessionAuth)
	api_v1.GET("/api-keys", handlers.GetAPIKeysHandler, sessionAuth)
	api_v1.GET("/api-keys/scopes", handlers.GetScopesHandler, sessionAuth)
	api_v1.GET("/api-keys/:key_id", handlers.GetAPIKeyHandler, sessionAuth)
	api_v1.PATCH("/api-keys/:key_id", handlers.UpdateAPIKeyHandler, sessionAuth)
	api_v1.DELETE("/api-keys/:key_id", handlers.DeleteAPIKeyHandler, sessionAuth)
	api_v1.POST("/api-keys/:key_id/regenerate", handlers.RegenerateAPIKeyHandler, sessionAuth)

	api_v1.POST("/sessions", handlers.CreateWASessionHandler, anyAuth, middlewares.RequireScope(models.ScopeSessionsWrite))
	api_v1.GET("/sessions", handlers.GetWASessionsHandler, anyAuth, middlewares.RequireScope(models.ScopeSessionsRead))
	api_v1.GET("/sessions/:session_id", handlers.GetWASessionHandler, anyAuth, middlewares.RequireScope(models.ScopeSessionsRead))
	api_v1.DELETE("/sessions/:session_id", handlers.DeleteWASessionHandler, anyAuth, middlewares.RequireScope(models.ScopeSessionsWrite))
	api_v1.POST("/sessions/:session_id/start", handlers.StartWASessionHandler, anyAuth, middlewares.RequireScope(models.ScopeSessionsWrite))
	api_v1.POST("/sessions/:session_id/stop", handlers.StopWASessionHandler, anyAuth, middlewares.RequireScope(models.ScopeSessionsWrite))
	api_v1.GET("/sessions/:session_id/status", handlers.GetWASessionStatusHandler, anyAuth, middlewares.RequireScope(models.ScopeSessionsRead))
	api_v1.GET("/sessions/:session_id/qr", handlers.GetWASessionQRHandler, anyAuth, middlewares.RequireScope(models.ScopeSessionsRead))

	api_v1.POST("/sessions/:session_id/messages/send", handlers.SendMessageHandler, anyAuth, middlewares.RequireScope(models.ScopeMessagesSend))

	api_v1.GET("/sessions/:session_id/chats", handlers.GetChatsHandler, anyAuth, middlewares.RequireScope(models.ScopeChatsRead))
	api_v1.POST("/sessions/:session_id/chats/archive", handlers.ArchiveChatHandler, anyAuth, middlewares.RequireScope(models.ScopeChatsWrite))
	api_v1.POST("/sessions/:session_id/chats/unarchive", handlers.UnarchiveChatHandler, anyAuth, middlewares.RequireScope(models.ScopeChatsWrite))
	api_v1.POST("/sessions/:session_id/chats/pin", handlers.PinChatHandler, anyAuth, middlewares.RequireScope(models.ScopeChatsWrite))
	api_v1.POST("/sessions/:session_id/chats/unpin", handlers.UnpinChatHandler, anyAuth, middlewares.RequireScope(models.ScopeChatsWrite))
	api_v1.POST("/sessions/:session_id/chats/mute", handlers.MuteChatHandler, anyAuth, middlewares.RequireScope(models.ScopeChatsWrite))
	api_v1.POST("/sessions/:session_id/chats/unmute", handlers.UnmuteChatHandler, anyAuth, middlewares.RequireScope(models.ScopeChatsWrite))
	api_v1.POST("/sessions/:session_id/chats/read", handlers.MarkChatReadHandler, anyAuth, middlewares.RequireScope(models.ScopeChatsWrite))
	api_v1.DELETE("/sessions/:session_id/chats/:chat_id", handlers.DeleteChatHandler, anyAuth, middlewares.RequireScope(models.ScopeChatsWrite))
	api_v1.PUT("/sessions/:session_id/chats/:chat_id/labels", handlers.SetChatLabelsHandler, anyAuth, middlewares.RequireScope(models.ScopeLabelsWrite))

	api_v1.POST("/sessions/:session_id/groups", handlers.CreateGroupHandler, anyAuth, middlewares.RequireScope(models.ScopeGroupsWrite))
	api_v1.GET("/sessions/:session_id/groups", handlers.GetGroupsHandler, anyAuth, middlewares.RequireScope(models.ScopeGroupsRead))
	api_v1.GET("/sessions/:session_id/groups/:group_id", handlers.GetGroupHandler, anyAuth, middlewares.RequireScope(models.ScopeGroupsRead))
	api_v1.POST("/sessions/:session_id/groups/:group_id/participants", handlers.AddGroupParticipantsHandler, anyAuth, middlewares.RequireScope(models.ScopeGroupsWrite))
	api_v1.DELETE("/sessions/:session_id/groups/:group_id/participants", handlers.RemoveGroupParticipantsHandler, anyAuth, middlewares.RequireScope(models.ScopeGroupsWrite))
	api_v1.PUT("/sessions/:session_id/groups/:group_id/subject", handlers.SetGroupSubjectHandler, anyAuth, middlewares.RequireScope(models.ScopeGroupsWrite))
	api_v1.PUT("/sessions/:session_id/groups/:group_id/description", handlers.SetGroupDescriptionHandler, anyAuth, middlewares.RequireScope(models.ScopeGroupsWrite))
	api_v1.POST("/sessions/:session_id/groups/:group_id/leave", handlers.LeaveGroupHandler, anyAuth, middlewares.RequireScope(models.ScopeGroupsWrite))
	api_v1.GET("/sessions/:session_id/groups/:group_id/invite-code", handlers.GetGroupInviteCodeHandler, anyAuth, middlewares.RequireScope(models.ScopeGroupsRead))

	api_v1.GET("/sessions/:session_id/channels", handlers.GetChannelsHandler, anyAuth, middlewares.RequireScope(models.ScopeChannelsRead))
	api_v1.POST("/sessions/:session_id/channels", handlers.CreateChannelHandler, anyAuth, middlewares.RequireScope(models.ScopeChannelsWrite))
	api_v1.POST("/sessions/:session_id/channels/:channel_id/follow", handlers.FollowChannelHandler, anyAuth, middlewares.RequireScope(models.ScopeChannelsWrite))
	api_v1.POST("/sessions/:session_id/channels/:channel_id/unfollow", handlers.UnfollowChannelHandler, anyAuth, middlewares.RequireScope(models.ScopeChannelsWrite))
	api_v1.POST("/sessions/:session_id/channels/:channel_id/mute", handlers.MuteChannelHandler, anyAuth, middlewares.RequireScope(models.ScopeChannelsWrite))

	api_v1.GET("/sessions/:session_id/labels", handlers.GetLabelsHandler, anyAuth, middlewares.RequireScope(models.ScopeLabelsRead))
	api_v1.POST("/sessions/:session_id/labels", handlers.UpsertLabelHandler, anyAuth, middlewares.RequireScope(models.ScopeLabelsWrite))
	api_v1.DELETE("/sessions/:session_id/labels/:label_id", handlers.DeleteLabelHandler, anyAuth, middlewares.RequireScope(models.ScopeLabelsWrite))

	api_v1.POST("/sessions/:session_id/presence", handlers.SetPresenceHandler, anyAuth, middlewares.RequireScope(models.ScopePresenceWrite))
	api_v1.POST("/sessions/:session_id/presence/subscribe", handlers.SubscribePresenceHandler, anyAuth, middlewares.RequireScope(models.ScopePresenceWrite))
	api_v1.GET("/sessions/:session_id/presence/:chat_id", handlers.GetPresenceHandler, anyAuth, middlewares.RequireScope(models.ScopePresenceRead))

	api_v1.POST("/sessions/:session_id/status/text", handlers.SendStatusHandler, anyAuth, middlewares.RequireScope(models.ScopeStatusWrite))

	api_v1.GET("/sessions/:session_id/profile", handlers.GetProfileHandler, anyAuth, middlewares.RequireScope(models.ScopeProfileRead))
	api_v1.PUT("/sessions/:session_id/profile/name", handlers.SetProfileNameHandler, anyAuth, middlewares.RequireScope(models.ScopeProfileWrite))
	api_v1.PUT("/sessions/:session_id/profile/about", handlers.SetProfileAboutHandler, anyAuth, middlewares.RequireScope(models.ScopeProfileWrite))
	api_v1.PUT("/sessions/:session_id/profile/picture", handlers.SetProfilePictureHandler, anyAuth, middlewares.RequireScope(models.ScopeProfileWrite))

	api_v1.GET("/event-logs", handlers.GetEventLogsHandler, anyAuth, middlewares.RequireScope(models.ScopeEventsRead))
	api_v1.GET("/event-logs/summary", handlers.GetEventLogsSummaryHandler, anyAuth, middlewares.RequireScope(models.ScopeEventsRead))

	e.GET("/dashboard/*", handlers.ServeStaticFile)

	commons.Logger.Info("v1 routes registered successfully")
}
