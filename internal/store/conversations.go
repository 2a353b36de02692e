package store

import (
	"context"

	"pizzaria-pdv-services/internal/bot"
)

const conversationKeyPrefix = "whatsapp_pending/"

// Conversation state rides the generic document table, one document
// per phone number. Updates are read-modify-write with last-writer-
// wins; a stale overwrite costs at worst a re-prompt.
func (s *Store) Conversation(ctx context.Context, phone string) (*bot.Conversation, error) {
	var conv bot.Conversation
	found, err := s.Get(ctx, conversationKeyPrefix+phone, &conv)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &conv, nil
}

func (s *Store) SaveConversation(ctx context.Context, conv *bot.Conversation) error {
	return s.Set(ctx, conversationKeyPrefix+conv.Phone, conv)
}

func (s *Store) DeleteConversation(ctx context.Context, phone string) error {
	return s.Delete(ctx, conversationKeyPrefix+phone)
}
