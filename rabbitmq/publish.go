// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
	"wagate-server/commons"
	"wagate-server/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publish sends a payload to an exchange inside the given vhost.
func (c *Client) Publish(vhost, exchange, routingKey string, body []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/json"
	}

	conn, err := amqp.Dial(fmt.Sprintf("%s/%s", c.AMQPURL, url.PathEscape(vhost)))
	if err != nil {
		commons.Logger.Errorf("Failed to dial AMQP for vhost %s: %v", vhost, err)
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		commons.Logger.Errorf("Failed to open AMQP channel: %v", err)
		return err
	}
	defer ch.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType: contentType,
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		commons.Logger.Errorf("Failed to publish to %s/%s: %v", vhost, exchange, err)
		return err
	}
	commons.Logger.Debugf("Published %d bytes to %s/%s (%s)", len(body), vhost, exchange, routingKey)
	return nil
}

// PublishEvent fans a gateway event out to the account's wa.events
// exchange. Routing key is "<session_id>.<kind>" so consumers can bind
// per session or per event family.
func (c *Client) PublishEvent(vhost string, event *models.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}
	routingKey := fmt.Sprintf("%s.%s", event.SessionID, event.Kind)
	return c.Publish(vhost, EventsExchange, routingKey, body, "application/json")
}
