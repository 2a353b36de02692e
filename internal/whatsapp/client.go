package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const graphBaseURL = "https://graph.facebook.com/v22.0"

// Client talks to the WhatsApp Cloud API: outbound texts and media
// retrieval for voice messages.
type Client struct {
	token   string
	phoneID string
	client  *http.Client
	logger  *zap.Logger
}

func New(token, phoneID string, logger *zap.Logger) *Client {
	return &Client{
		token:   token,
		phoneID: phoneID,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (c *Client) SendText(ctx context.Context, to, text string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"text":              map[string]string{"body": text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", graphBaseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("whatsapp api error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))
		return fmt.Errorf("whatsapp api status %d", resp.StatusCode)
	}
	return nil
}

// MediaURL resolves a webhook media id to its short-lived download URL.
func (c *Client) MediaURL(ctx context.Context, mediaID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s", graphBaseURL, mediaID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("media lookup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media lookup status %d", resp.StatusCode)
	}

	var decoded struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.URL == "" {
		return "", fmt.Errorf("media %s has no url", mediaID)
	}
	return decoded.URL, nil
}

func (c *Client) DownloadMedia(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media download status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
