package ai

import "context"

// chatbotSystemPrompt frames the assistant as a Korean-speaking parenting
// counselor: warm, practical, and deferring to medical professionals when
// the question goes beyond everyday care.
const chatbotSystemPrompt = `당신은 전문 육아 상담사입니다.
부모들의 육아 고민을 경청하고, 따뜻하면서도 전문적인 조언을 제공합니다.
답변은 간결하고 실용적이어야 하며, 필요시 의료 전문가 상담을 권장하세요.
항상 한국어로 답변하세요.`

// ChatTurn is one prior exchange in a chatbot conversation. Role is
// "user" or "assistant"; the client keeps its own history and replays it
// on every request.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatReply answers one guardian message in the context of the prior
// conversation. Unlike ActionText there is no fallback: a failed call is
// an error the handler reports, since an empty counseling reply has no
// deterministic substitute.
func (c *Client) ChatReply(ctx context.Context, history []ChatTurn, message string) (string, error) {
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: chatbotSystemPrompt})
	for _, turn := range history {
		role := turn.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, chatMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: message})

	return c.complete(ctx, chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   500,
	})
}
