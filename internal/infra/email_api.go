package infra

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type emailAPIAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Content     string `json:"content"` // base64
}

// emailAPIPayload is the JSON body of the transactional email API.
type emailAPIPayload struct {
	From        string               `json:"from"`
	To          []string             `json:"to"`
	Subject     string               `json:"subject"`
	HTML        string               `json:"html"`
	Attachments []emailAPIAttachment `json:"attachments,omitempty"`
}

// EmailAPIClient posts messages to a bearer-authenticated HTTP email API.
type EmailAPIClient struct {
	url        string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewEmailAPIClient(url, apiKey, from string) *EmailAPIClient {
	return &EmailAPIClient{
		url:        url,
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *EmailAPIClient) Send(ctx context.Context, msg EmailMessage) error {
	payload := emailAPIPayload{From: c.from, To: msg.To, Subject: msg.Subject, HTML: msg.HTML}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, emailAPIAttachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Content:     base64.StdEncoding.EncodeToString(a.Data),
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("email api: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("email api: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email api: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email api: returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return nil
}
