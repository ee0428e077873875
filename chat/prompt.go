package chat

import (
	"fmt"
	"strings"

	"quotebot/model"
)

const promptPreamble = `You are a crypto bot and a stock bot. You can help users get the prices of cryptocurrencies, stocks, and books.

Messages inside [] means that it's a UI element or a user event. For example:
- "[Price of BTC = 69000]" means that the interface of the cryptocurrency price of BTC is shown to the user.
`

const promptEpilogue = `
If the user asks for anything outside this set, it is an impossible task, and you should respond that you are a demo and cannot do that.`

// toolGuidance gives the model one selection hint per tool. Only hints for
// tools actually registered end up in the prompt, so a registry configured
// without the book tool produces a prompt that never mentions it.
var toolGuidance = map[string]string{
	"get_crypto_price":              "If the user wants a cryptocurrency price, call `get_crypto_price`.",
	"get_crypto_stats":              "If the user wants the market cap or other stats of a cryptocurrency, call `get_crypto_stats`.",
	"get_microsoft_stock":           "If the user wants the price of a stock, call `get_microsoft_stock` to show the price.",
	"get_microsoft_product_details": "If the user wants product details, call `get_microsoft_product_details` to show the details.",
	"get_book_stock":                "If the user wants book stock, call `get_book_stock` to show the book stock.",
}

// buildSystemPrompt synthesizes the fixed instruction text for one turn.
// The returned prompt is sent to the provider but never persisted into the
// visible transcript.
func buildSystemPrompt(toolNames []string) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n")
	for _, name := range toolNames {
		if hint, ok := toolGuidance[name]; ok {
			b.WriteString(hint)
			b.WriteString("\n")
		} else {
			b.WriteString(fmt.Sprintf("If the user asks for it, call `%s`.\n", name))
		}
	}
	b.WriteString(promptEpilogue)
	return b.String()
}

// buildProviderMessages assembles the message list sent to the provider:
// the synthesized system message first, then the conversation transcript.
// Tool summaries travel as plain assistant text, which is exactly what the
// model is meant to see on future turns.
func buildProviderMessages(systemPrompt string, transcript []model.Message) []model.Message {
	messages := make([]model.Message, 0, len(transcript)+1)
	messages = append(messages, model.Message{Role: "system", Content: systemPrompt})
	for _, msg := range transcript {
		if msg.Role == "user" || msg.Role == "assistant" {
			messages = append(messages, model.Message{
				Role:    msg.Role,
				Name:    msg.Name,
				Content: msg.Content,
			})
		}
	}
	return messages
}
