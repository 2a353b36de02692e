package llm

import (
	"context"

	"pizzaria-pdv-services/internal/menu"
	"pizzaria-pdv-services/internal/order"
)

const (
	ActionProcessOrder   = "PROCESS_ORDER"
	ActionAnswerQuestion = "ANSWER_QUESTION"
)

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one interpretation turn: the new message plus everything
// the model needs for context.
type Request struct {
	Message      string
	History      []Turn
	CurrentLines []order.Line
	Catalog      *menu.Catalog
}

// Result is the model's structured read of the conversation. It is
// treated as unreliable: items pass through the resolver before any
// price is believed.
type Result struct {
	Action                string         `json:"action"`
	Items                 []order.AIItem `json:"itens"`
	Address               string         `json:"address"`
	PaymentMethod         string         `json:"paymentMethod"`
	Answer                string         `json:"answer"`
	ClarificationQuestion string         `json:"clarification_question"`
}

// Interpreter is what the conversation assembler depends on; the
// Gemini client implements it, tests substitute fakes.
type Interpreter interface {
	Interpret(ctx context.Context, req Request) (*Result, error)
}
