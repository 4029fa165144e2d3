// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"wagate-server/crypto"
	"wagate-server/db"
	"wagate-server/middlewares"
	"wagate-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func validateKeyName(name string) *echo.HTTPError {
	if len(name) < 3 || len(name) > 100 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field must be between 3 and 100 characters",
		}
	}
	return nil
}

func parseKeyExpiry(value string) (*time.Time, *echo.HTTPError) {
	expiresAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "expires_at field must be a valid RFC 3339 timestamp",
		}
	}
	if expiresAt.Before(time.Now()) {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "expires_at field must be in the future",
		}
	}
	return &expiresAt, nil
}

// findOwnedAPIKey resolves the :key_id path param against the
// authenticated user's keys.
func findOwnedAPIKey(c echo.Context) (*models.User, *models.APIKey, *echo.HTTPError) {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return nil, nil, &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	keyID := c.Param("key_id")
	if keyID == "" {
		return nil, nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Key ID is required",
		}
	}

	apiKey := models.APIKey{}
	if err := db.Conn.Where("key_id = ? AND user_id = ?", keyID, user.ID).First(&apiKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("API key not found.")
			return nil, nil, &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "API key not found",
			}
		}
		logger.Errorf("Failed to find API key: %v", err)
		return nil, nil, &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	return user, &apiKey, nil
}

// CreateAPIKeyHandler godoc
// @Summary      Create an API key
// @Description  Creates a scoped API key. The full key is returned exactly once in the response; only a hash is stored.
// @Tags         keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        createAPIKeyRequest  body  CreateAPIKeyRequest  true  "API key creation payload"
// @Success      201 {object} CreateAPIKeyResponse "API key created successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, invalid name, scopes or expiry"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      409 {object} echo.HTTPError     "Duplicate key name"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/api-keys [post]
func CreateAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	var req CreateAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create API key request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if httpErr := validateKeyName(req.Name); httpErr != nil {
		logger.Error("Invalid API key name.")
		return httpErr
	}

	if offending, ok := models.ValidateScopes(req.Scopes); !ok {
		if offending == "" {
			logger.Error("Scopes are required.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "scopes field must be a non-empty array of valid scopes",
			}
		}
		logger.Errorf("Invalid or duplicate scope: %s", offending)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Invalid or duplicate scope: %s", offending),
		}
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		var httpErr *echo.HTTPError
		expiresAt, httpErr = parseKeyExpiry(*req.ExpiresAt)
		if httpErr != nil {
			logger.Error("Invalid API key expiry.")
			return httpErr
		}
	}

	count := db.Conn.Where("name = ? AND user_id = ?", req.Name, user.ID).First(&models.APIKey{}).RowsAffected
	if count > 0 {
		logger.Errorf("Duplicate API key name detected.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "You already have an API key with this name. Please try another one.",
		}
	}

	keyID, err := crypto.GenerateRandomString("wk_", 16, "hex")
	if err != nil {
		logger.Errorf("Failed to generate key ID: %v", err)
		return echo.ErrInternalServerError
	}

	secret, err := crypto.GenerateRandomString("", 16, "hex")
	if err != nil {
		logger.Errorf("Failed to generate key secret: %v", err)
		return echo.ErrInternalServerError
	}

	fullKey := keyID + secret

	newCrypto := crypto.NewCrypto()
	hashedKey, err := newCrypto.HashSecret(fullKey)
	if err != nil {
		logger.Errorf("Failed to hash API key: %v", err)
		return echo.ErrInternalServerError
	}

	apiKey := models.APIKey{
		KeyID:       keyID,
		HashedKey:   hashedKey,
		KeySuffix:   fullKey[len(fullKey)-4:],
		Name:        req.Name,
		Description: req.Description,
		Scopes:      req.Scopes,
		IsActive:    true,
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
	}

	if err := db.Conn.Create(&apiKey).Error; err != nil {
		logger.Errorf("Failed to create API key: %v", err)
		return echo.ErrInternalServerError
	}

	category := new(models.EventCategory)
	*category = models.Credential
	status := new(models.EventStatus)
	*status = models.Sent
	description := "API key created: " + apiKey.Name
	_ = LogEventHandler(category, status, nil, nil, nil, user.ID, &description)

	logger.Infof("API key created successfully.")
	return c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		APIKey:  fullKey,
		Key:     apiKeyDetails(apiKey),
		Message: "API key created successfully",
	})
}

// GetAPIKeysHandler godoc
// @Summary      List API keys
// @Description  Retrieves a paginated list of the authenticated user's API keys. Secrets are never returned; each entry carries a displayable preview.
// @Tags         keys
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        page     query   int     false  "Page number (default 1)"
// @Param        page_size query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} APIKeyListResponse "Paginated list of API keys"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/api-keys [get]
func GetAPIKeysHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	page, pageSize, offset := parsePagination(c)

	var total int64
	if err := db.Conn.Model(&models.APIKey{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count API keys: %v", err)
		return echo.ErrInternalServerError
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var apiKeys []models.APIKey
	if err := db.Conn.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&apiKeys).Error; err != nil {
		logger.Errorf("Failed to fetch API keys: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]APIKeyDetails, 0, len(apiKeys))
	for _, apiKey := range apiKeys {
		details = append(details, apiKeyDetails(apiKey))
	}

	return c.JSON(http.StatusOK, APIKeyListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "API keys retrieved successfully",
	})
}

// GetAPIKeyHandler godoc
// @Summary      Get an API key
// @Description  Retrieves one API key by its public key ID.
// @Tags         keys
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        key_id  path  string  true  "Public key ID"
// @Success      200 {object} APIKeyResponse "API key retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "API key not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/api-keys/{key_id} [get]
func GetAPIKeyHandler(c echo.Context) error {
	_, apiKey, httpErr := findOwnedAPIKey(c)
	if httpErr != nil {
		return httpErr
	}

	return c.JSON(http.StatusOK, APIKeyResponse{
		Key:     apiKeyDetails(*apiKey),
		Message: "API key retrieved successfully",
	})
}

// UpdateAPIKeyHandler godoc
// @Summary      Update an API key
// @Description  Edits an API key's name, description, scopes, expiry or enabled flag. Omitted fields are left unchanged. The secret cannot be edited; use the regenerate endpoint instead.
// @Tags         keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        key_id  path  string  true  "Public key ID"
// @Param        updateAPIKeyRequest  body  UpdateAPIKeyRequest  true  "API key update payload"
// @Success      200 {object} APIKeyResponse "API key updated successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, invalid name, scopes or expiry"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "API key not found"
// @Failure      409 {object} echo.HTTPError     "Duplicate key name"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/api-keys/{key_id} [patch]
func UpdateAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	user, apiKey, httpErr := findOwnedAPIKey(c)
	if httpErr != nil {
		return httpErr
	}

	var req UpdateAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update API key request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Name != nil && *req.Name != apiKey.Name {
		if httpErr := validateKeyName(*req.Name); httpErr != nil {
			logger.Error("Invalid API key name.")
			return httpErr
		}

		count := db.Conn.Where("name = ? AND user_id = ?", *req.Name, user.ID).First(&models.APIKey{}).RowsAffected
		if count > 0 {
			logger.Errorf("Duplicate API key name detected.")
			return &echo.HTTPError{
				Code:    http.StatusConflict,
				Message: "You already have an API key with this name. Please try another one.",
			}
		}
		apiKey.Name = *req.Name
	}

	if req.Description != nil {
		apiKey.Description = req.Description
	}

	if req.Scopes != nil {
		if offending, ok := models.ValidateScopes(req.Scopes); !ok {
			if offending == "" {
				logger.Error("Scopes must not be empty.")
				return &echo.HTTPError{
					Code:    http.StatusBadRequest,
					Message: "scopes field must be a non-empty array of valid scopes",
				}
			}
			logger.Errorf("Invalid or duplicate scope: %s", offending)
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("Invalid or duplicate scope: %s", offending),
			}
		}
		apiKey.Scopes = req.Scopes
	}

	if req.ExpiresAt != nil {
		if *req.ExpiresAt == "" {
			apiKey.ExpiresAt = nil
		} else {
			expiresAt, httpErr := parseKeyExpiry(*req.ExpiresAt)
			if httpErr != nil {
				logger.Error("Invalid API key expiry.")
				return httpErr
			}
			apiKey.ExpiresAt = expiresAt
		}
	}

	if req.IsActive != nil {
		apiKey.IsActive = *req.IsActive
	}

	if err := db.Conn.Save(apiKey).Error; err != nil {
		logger.Errorf("Failed to update API key: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("API key updated successfully.")
	return c.JSON(http.StatusOK, APIKeyResponse{
		Key:     apiKeyDetails(*apiKey),
		Message: "API key updated successfully",
	})
}

// DeleteAPIKeyHandler godoc
// @Summary      Delete an API key
// @Description  Permanently deletes an API key. Requests authenticated with it fail immediately.
// @Tags         keys
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        key_id  path  string  true  "Public key ID"
// @Success      200 {object} GenericResponse "API key deleted successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "API key not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/api-keys/{key_id} [delete]
func DeleteAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	user, apiKey, httpErr := findOwnedAPIKey(c)
	if httpErr != nil {
		return httpErr
	}

	if err := db.Conn.Unscoped().Delete(apiKey).Error; err != nil {
		logger.Errorf("Failed to delete API key: %v", err)
		return echo.ErrInternalServerError
	}

	category := new(models.EventCategory)
	*category = models.Credential
	status := new(models.EventStatus)
	*status = models.Sent
	description := "API key deleted: " + apiKey.Name
	_ = LogEventHandler(category, status, nil, nil, nil, user.ID, &description)

	logger.Infof("API key deleted successfully.")
	return c.JSON(http.StatusOK, GenericResponse{
		Message: "API key deleted successfully",
	})
}

// RegenerateAPIKeyHandler godoc
// @Summary      Regenerate an API key
// @Description  Replaces the key's secret while keeping its ID, name, scopes and settings. The old secret stops working immediately; the new one is returned exactly once.
// @Tags         keys
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        key_id  path  string  true  "Public key ID"
// @Success      200 {object} CreateAPIKeyResponse "API key regenerated successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "API key not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/api-keys/{key_id}/regenerate [post]
func RegenerateAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	user, apiKey, httpErr := findOwnedAPIKey(c)
	if httpErr != nil {
		return httpErr
	}

	secret, err := crypto.GenerateRandomString("", 16, "hex")
	if err != nil {
		logger.Errorf("Failed to generate key secret: %v", err)
		return echo.ErrInternalServerError
	}

	fullKey := apiKey.KeyID + secret

	newCrypto := crypto.NewCrypto()
	hashedKey, err := newCrypto.HashSecret(fullKey)
	if err != nil {
		logger.Errorf("Failed to hash API key: %v", err)
		return echo.ErrInternalServerError
	}

	apiKey.HashedKey = hashedKey
	apiKey.KeySuffix = fullKey[len(fullKey)-4:]

	if err := db.Conn.Save(apiKey).Error; err != nil {
		logger.Errorf("Failed to regenerate API key: %v", err)
		return echo.ErrInternalServerError
	}

	category := new(models.EventCategory)
	*category = models.Credential
	status := new(models.EventStatus)
	*status = models.Sent
	description := "API key regenerated: " + apiKey.Name
	_ = LogEventHandler(category, status, nil, nil, nil, user.ID, &description)

	logger.Infof("API key regenerated successfully.")
	return c.JSON(http.StatusOK, CreateAPIKeyResponse{
		APIKey:  fullKey,
		Key:     apiKeyDetails(*apiKey),
		Message: "API key regenerated successfully",
	})
}

// GetScopesHandler godoc
// @Summary      List available scopes
// @Description  Retrieves the static scope catalog with descriptions, for use by the dashboard's key creation form.
// @Tags         keys
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object} ScopeListResponse "Scopes retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Router       /v1/api-keys/scopes [get]
func GetScopesHandler(c echo.Context) error {
	scopes := models.AllScopes()
	details := make([]ScopeDetails, 0, len(scopes))
	for _, scope := range scopes {
		details = append(details, ScopeDetails{
			Scope:       scope,
			Description: models.ScopeDescriptions[scope],
		})
	}

	return c.JSON(http.StatusOK, ScopeListResponse{
		Data:    details,
		Message: "Scopes retrieved successfully",
	})
}
