package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"pizzaria-pdv-services/pkg/response"
)

// webhookPayload mirrors the Cloud API webhook envelope down to the
// fields this service reads.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []webhookMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type webhookMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Audio *struct {
		ID string `json:"id"`
	} `json:"audio"`
}

// WhatsAppVerify answers the Cloud API subscription handshake.
func (h *Handler) WhatsAppVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == h.Config.WhatsAppVerifyToken {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	w.WriteHeader(http.StatusForbidden)
}

// WhatsAppWebhook receives inbound messages. The Cloud API expects a
// quick 200 regardless of processing outcome, so messages are handled
// on a detached goroutine.
func (h *Handler) WhatsAppWebhook(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid webhook payload")
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				go h.processInbound(msg)
			}
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) processInbound(msg webhookMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), h.Config.WebhookProcessTimeout)
	defer cancel()

	text, err := h.inboundText(ctx, msg)
	if err != nil {
		h.Logger.Error("inbound message preparation failed",
			zap.String("from", msg.From), zap.String("type", msg.Type), zap.Error(err))
		h.sendReply(ctx, msg.From,
			"Desculpe, não consegui entender sua mensagem agora. Pode tentar de novo?")
		return
	}
	if text == "" && msg.Type != "text" {
		// Stickers, images and other unsupported types.
		h.sendReply(ctx, msg.From,
			"Por enquanto só consigo atender por texto ou áudio. O que gostaria de pedir?")
		return
	}

	reply, err := h.Bot.HandleMessage(ctx, msg.From, text)
	if err != nil {
		h.Logger.Error("conversation turn failed",
			zap.String("from", msg.From), zap.Error(err))
		h.sendReply(ctx, msg.From,
			"Tivemos um problema aqui, mas seu pedido não se perdeu. Pode mandar a última mensagem de novo?")
		return
	}
	h.sendReply(ctx, msg.From, reply)
}

func (h *Handler) inboundText(ctx context.Context, msg webhookMessage) (string, error) {
	switch msg.Type {
	case "text":
		if msg.Text == nil {
			return "", nil
		}
		return msg.Text.Body, nil
	case "audio":
		if msg.Audio == nil || h.Transcriber == nil {
			return "", nil
		}
		mediaURL, err := h.WhatsApp.MediaURL(ctx, msg.Audio.ID)
		if err != nil {
			return "", err
		}
		audio, err := h.WhatsApp.DownloadMedia(ctx, mediaURL)
		if err != nil {
			return "", err
		}
		return h.Transcriber.Transcribe(ctx, audio)
	default:
		return "", nil
	}
}

func (h *Handler) sendReply(ctx context.Context, to, text string) {
	if h.WhatsApp == nil || text == "" {
		return
	}
	if err := h.WhatsApp.SendText(ctx, to, text); err != nil {
		h.Logger.Error("outbound message failed", zap.String("to", to), zap.Error(err))
	}
}
