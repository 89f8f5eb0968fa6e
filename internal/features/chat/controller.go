package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const chunkSize = 24

type ChatController struct {
	Service ChatService
}

func NewChatController(service ChatService) *ChatController {
	return &ChatController{Service: service}
}

type streamRequest struct {
	Message string `json:"message"`
}

// PostStream godoc
// @Summary Stream a chat reply
// @Description Answer one chat message as Server-Sent-Events frames: start, chunk*, then done or error
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/chat/stream [post]
func (c *ChatController) PostStream(ctx *fiber.Ctx) error {
	var req streamRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	service := c.Service
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The request context dies with the handler; the stream
		// outlives it.
		writeEvent(w, Event{Type: EventStart})

		result, reply, err := service.Process(context.Background(), message)
		if err != nil {
			writeEvent(w, Event{Type: EventError, Error: err.Error()})
			return
		}

		for _, chunk := range chunkText(reply, chunkSize) {
			writeEvent(w, Event{Type: EventChunk, Content: chunk})
			time.Sleep(10 * time.Millisecond)
		}
		writeEvent(w, Event{Type: EventDone, Result: result})
	}))
	return nil
}

func writeEvent(w *bufio.Writer, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
	w.Flush()
}

// chunkText splits by runes so a multi-byte character never straddles
// two chunks. An empty reply still yields one empty chunk.
func chunkText(text string, size int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}

	chunks := []string{}
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
