// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"net/http"
	"net/url"
)

type RabbitMQConfig struct {
	baseURL  string
	amqpURL  string
	username string
	password string
}

type Client struct {
	BaseURL    *url.URL
	AMQPURL    string
	Username   string
	Password   string
	HTTPClient *http.Client
}

// EventsExchange is the per-vhost topic exchange gateway events are
// published to.
const EventsExchange = "wa.events"
