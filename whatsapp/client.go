// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"wagate-server/commons"
)

func NewClient(c EngineConfig) (*Client, error) {
	if c.baseURL == "" {
		c.baseURL = commons.GetEnv("WA_ENGINE_URL", "http://localhost:3000")
	}
	if c.token == "" {
		c.token = commons.GetEnv("WA_ENGINE_TOKEN")
	}

	parsedURL, err := url.Parse(c.baseURL)
	if err != nil {
		commons.Logger.Error("Failed to parse WhatsApp engine base URL:", err)
		return nil, err
	}
	commons.Logger.Debugf("WhatsApp engine client initialized for %s", c.baseURL)
	return &Client{
		BaseURL:    parsedURL,
		Token:      c.token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *Client) do(method, path string, body any, out any) error {
	return c.doQuery(method, path, nil, body, out)
}

func (c *Client) doQuery(method, path string, query url.Values, body any, out any) error {
	rel := &url.URL{Path: path}
	if query != nil {
		rel.RawQuery = query.Encode()
	}
	u := c.BaseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, u.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := resp.Status
		var engineBody struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&engineBody); err == nil {
			if engineBody.Message != "" {
				message = engineBody.Message
			} else if engineBody.Error != "" {
				message = engineBody.Error
			}
		}
		commons.Logger.Errorf("Engine %s %s failed: %d %s", method, path, resp.StatusCode, message)
		return &EngineError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode engine response: %w", err)
		}
	}
	return nil
}

// IsEngineNotFound reports whether err is the engine saying 404.
func IsEngineNotFound(err error) bool {
	engineErr, ok := err.(*EngineError)
	return ok && engineErr.StatusCode == http.StatusNotFound
}

func (c *Client) CreateSession(sessionID string) error {
	commons.Logger.Debugf("Creating engine session: %s", sessionID)
	return c.do("PUT", fmt.Sprintf("/api/sessions/%s", url.PathEscape(sessionID)), nil, nil)
}

func (c *Client) DeleteSession(sessionID string) error {
	commons.Logger.Debugf("Deleting engine session: %s", sessionID)
	return c.do("DELETE", fmt.Sprintf("/api/sessions/%s", url.PathEscape(sessionID)), nil, nil)
}

func (c *Client) StartSession(sessionID string) (*SessionStatus, error) {
	commons.Logger.Debugf("Starting engine session: %s", sessionID)
	status := &SessionStatus{}
	err := c.do("POST", fmt.Sprintf("/api/sessions/%s/start", url.PathEscape(sessionID)), nil, status)
	if err != nil {
		return nil, err
	}
	commons.Logger.Infof("Engine session started: %s (%s)", sessionID, status.Status)
	return status, nil
}

func (c *Client) StopSession(sessionID string) error {
	commons.Logger.Debugf("Stopping engine session: %s", sessionID)
	err := c.do("POST", fmt.Sprintf("/api/sessions/%s/stop", url.PathEscape(sessionID)), nil, nil)
	if err != nil {
		return err
	}
	commons.Logger.Infof("Engine session stopped: %s", sessionID)
	return nil
}

func (c *Client) GetSessionStatus(sessionID string) (*SessionStatus, error) {
	commons.Logger.Debugf("Fetching engine session status: %s", sessionID)
	status := &SessionStatus{}
	err := c.do("GET", fmt.Sprintf("/api/sessions/%s/status", url.PathEscape(sessionID)), nil, status)
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (c *Client) GetQRCode(sessionID string) (*QRCode, error) {
	commons.Logger.Debugf("Fetching QR code for session: %s", sessionID)
	qr := &QRCode{}
	err := c.do("GET", fmt.Sprintf("/api/sessions/%s/qr", url.PathEscape(sessionID)), nil, qr)
	if err != nil {
		return nil, err
	}
	return qr, nil
}
