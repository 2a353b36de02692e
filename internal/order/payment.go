package order

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

const MethodCash = "Cash"

// Payment is a tagged variant: cash carries the change math, anything
// else is just a method label. The historical wire format allowed a
// bare string or an object, so both are accepted on decode.
type Payment struct {
	Method       string  `json:"method"`
	ChangeFor    float64 `json:"changeFor,omitempty"`
	ChangeAmount float64 `json:"changeAmount,omitempty"`
}

func CashPayment(changeFor, orderTotal float64) Payment {
	change := Round2(changeFor - orderTotal)
	if change < 0 {
		change = 0
	}
	return Payment{Method: MethodCash, ChangeFor: Round2(changeFor), ChangeAmount: change}
}

func OtherPayment(label string) Payment {
	return Payment{Method: strings.TrimSpace(label)}
}

func (p Payment) IsCash() bool {
	return p.Method == MethodCash
}

func (p Payment) IsZero() bool {
	return p.Method == ""
}

// Label renders the payment the way it appears on a kitchen ticket.
func (p Payment) Label() string {
	if !p.IsCash() {
		return p.Method
	}
	return MethodCash + " (troco para " + FormatBRL(p.ChangeFor) +
		" - levar " + FormatBRL(p.ChangeAmount) + ")"
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*p = OtherPayment(label)
		return nil
	}

	type alias Payment
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Payment(decoded)
	return nil
}

var (
	changeForPattern = regexp.MustCompile(`(?i)(?:troco\s+para|change\s+for)\s*(?:r\$)?\s*([0-9]+(?:[.,][0-9]{1,2})?)`)
	amountPattern    = regexp.MustCompile(`([0-9]+(?:[.,][0-9]{1,2})?)`)
)

// ParsePayment interprets free-form payment text from the
// conversation. Returns a zero Payment when no known method is
// mentioned, so the assembler can re-prompt.
func ParsePayment(text string, orderTotal float64) Payment {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return Payment{}
	}

	switch {
	case strings.Contains(lower, "dinheiro") || strings.Contains(lower, "cash"):
		if match := changeForPattern.FindStringSubmatch(lower); match != nil {
			return CashPayment(parseAmount(match[1]), orderTotal)
		}
		if match := amountPattern.FindStringSubmatch(lower); match != nil {
			return CashPayment(parseAmount(match[1]), orderTotal)
		}
		return Payment{Method: MethodCash}
	case strings.Contains(lower, "pix"):
		return OtherPayment("Pix")
	case strings.Contains(lower, "crédito") || strings.Contains(lower, "credito"):
		return OtherPayment("Cartão de Crédito")
	case strings.Contains(lower, "débito") || strings.Contains(lower, "debito"):
		return OtherPayment("Cartão de Débito")
	case strings.Contains(lower, "cartão") || strings.Contains(lower, "cartao") || strings.Contains(lower, "card"):
		return OtherPayment("Cartão")
	}
	return Payment{}
}

func parseAmount(raw string) float64 {
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0
	}
	return value
}
