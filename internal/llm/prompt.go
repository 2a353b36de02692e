package llm

import (
	"encoding/json"
	"strings"
)

// DefaultTemplate is the built-in fallback when no active prompt
// document exists in the store. The operator-tuned template lives at
// config/bot_prompt_active and uses the same placeholders.
const DefaultTemplate = `Você é um atendente de pizzaria. Analise a conversa do cliente e extraia o pedido, usando estritamente os itens e preços do cardápio fornecido.
Se o cliente pedir um tamanho de pizza (4, 6, 8 ou 10 fatias), use o preço correspondente. Se não especificar o tamanho, pergunte.
Se o item for montável (isCustomizable: true), extraia as observações (ex: "sem cebola", "com bacon") para o campo "notes".
Pizza meia a meia deve ser nomeada "Pizza <tamanho> Meia <sabor 1> e Meia <sabor 2>".
Se o cliente fizer uma pergunta em vez de pedir, use a action ANSWER_QUESTION e responda no campo "answer".
Retorne o resultado APENAS em formato JSON.

CARDÁPIO DISPONÍVEL:
${CARDAPIO}

INGREDIENTES DISPONÍVEIS:
${INGREDIENTES}

HISTÓRICO DA CONVERSA:
${HISTORICO}

PEDIDO ATUAL:
${ESTADO_PEDIDO}

MENSAGEM DO CLIENTE:
"${MENSAGEM_CLIENTE}"

FORMATO DE SAÍDA JSON ESPERADO:
{
  "action": "PROCESS_ORDER" ou "ANSWER_QUESTION",
  "itens": [ { "name": "Nome do Item - Tamanho (se aplicável)", "price": 55.00, "quantity": 1, "notes": "sem cebola" } ],
  "address": "endereço se o cliente informou",
  "paymentMethod": "forma de pagamento se o cliente informou",
  "answer": "resposta à pergunta do cliente",
  "clarification_question": "Se precisar de mais informações, faça a pergunta aqui."
}`

type simplifiedItem struct {
	Name           string             `json:"name"`
	Category       string             `json:"category,omitempty"`
	Description    string             `json:"description,omitempty"`
	IsCustomizable bool               `json:"isCustomizable"`
	Prices         map[string]float64 `json:"prices"`
}

// BuildPrompt fills the template placeholders. The menu is reduced to
// what the model needs so the prompt stays small.
func BuildPrompt(template string, req Request) string {
	simplified := make([]simplifiedItem, 0, len(req.Catalog.Items))
	for _, item := range req.Catalog.Items {
		if !item.Available {
			continue
		}
		simplified = append(simplified, simplifiedItem{
			Name:           item.Name,
			Category:       item.Category,
			Description:    item.Description,
			IsCustomizable: item.IsCustomizable,
			Prices:         item.Prices,
		})
	}

	ingredients := make([]string, 0, len(req.Catalog.BurgerIngredients))
	for _, ing := range req.Catalog.BurgerIngredients {
		if ing.Available {
			ingredients = append(ingredients, ing.Name)
		}
	}

	replacer := strings.NewReplacer(
		"${CARDAPIO}", mustJSON(simplified),
		"${INGREDIENTES}", mustJSON(ingredients),
		"${HISTORICO}", mustJSON(req.History),
		"${ESTADO_PEDIDO}", mustJSON(req.CurrentLines),
		"${MENSAGEM_CLIENTE}", req.Message,
	)
	return replacer.Replace(template)
}

func mustJSON(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
