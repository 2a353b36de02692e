package store

import "context"

const activePromptKey = "config/bot_prompt_active"

type promptDoc struct {
	Template string `json:"template"`
}

// ActivePromptTemplate returns the operator-tuned bot prompt, or
// found=false when none has been published.
func (s *Store) ActivePromptTemplate(ctx context.Context) (string, bool, error) {
	var doc promptDoc
	found, err := s.Get(ctx, activePromptKey, &doc)
	if err != nil {
		return "", false, err
	}
	if !found || doc.Template == "" {
		return "", false, nil
	}
	return doc.Template, true, nil
}
