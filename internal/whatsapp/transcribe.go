package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const transcriptionURL = "https://api.openai.com/v1/audio/transcriptions"

// Transcriber turns voice orders into text via the Whisper API.
type Transcriber struct {
	apiKey string
	client *http.Client
}

func NewTranscriber(apiKey string) *Transcriber {
	return &Transcriber{
		apiKey: apiKey,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if t.apiKey == "" {
		return "", errors.New("missing OPENAI_API_KEY")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.ogg")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	_ = writer.WriteField("model", "whisper-1")
	// Language hint keeps pt-BR order vocabulary accurate.
	_ = writer.WriteField("language", "pt")
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, transcriptionURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcription status %d: %s", resp.StatusCode, string(raw))
	}

	var decoded struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	return decoded.Text, nil
}
