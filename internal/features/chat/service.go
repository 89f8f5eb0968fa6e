package chat

import (
	"context"
	"strings"

	"go-transformer/internal/features/assist"
)

type ChatService interface {
	// Process answers one chat message and returns the structured
	// result plus the text to stream back.
	Process(ctx context.Context, message string) (map[string]interface{}, string, error)
}

type ChatServiceImpl struct {
	Assist assist.AssistService
}

func NewChatService(assistService assist.AssistService) ChatService {
	return &ChatServiceImpl{Assist: assistService}
}

func (s *ChatServiceImpl) Process(ctx context.Context, message string) (map[string]interface{}, string, error) {
	response, err := s.Assist.Copilot(ctx, []assist.ChatMessage{
		{Role: "user", Content: message},
	}, false)
	if err != nil {
		return nil, "", err
	}

	result := map[string]interface{}{
		"mode":            response.Mode,
		"reply":           response.Reply,
		"questions":       response.Questions,
		"changes":         response.Changes,
		"updated_rules":   response.UpdatedRules,
		"applied":         response.Applied,
		"used_ai":         response.UsedAI,
		"state_persisted": response.StatePersisted,
	}
	return result, formatReply(response), nil
}

func formatReply(response assist.CopilotResponse) string {
	var b strings.Builder
	b.WriteString(response.Reply)

	if len(response.Questions) > 0 {
		b.WriteString("\n")
		for _, question := range response.Questions {
			b.WriteString("\n- ")
			b.WriteString(question)
		}
	}

	if b.Len() == 0 {
		return "Request processed."
	}
	return b.String()
}
