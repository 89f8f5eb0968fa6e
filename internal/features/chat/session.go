package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Stream event types carried in SSE data payloads.
const (
	EventStart = "start"
	EventChunk = "chunk"
	EventDone  = "done"
	EventError = "error"
)

// Event is one decoded frame from the chat stream.
type Event struct {
	Type    string                 `json:"type"`
	Content string                 `json:"content,omitempty"`
	Result  map[string]interface{} `json:"result,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Message is one entry in a session's conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TransportError is a connection-level failure: the session moves to
// the error state and the user must resend.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("chat transport failed: %v", e.Cause)
}

// ProtocolError is one malformed frame. The decoder reports it and
// keeps going; a bad frame never aborts the stream.
type ProtocolError struct {
	Frame string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("malformed chat frame: %q", e.Frame)
}

// Decoder reassembles SSE frames from an incrementally growing byte
// stream. Reads may split frames anywhere, including mid-delimiter, so
// incomplete trailing data stays buffered until more bytes arrive.
type Decoder struct {
	buffer strings.Builder
}

// Feed appends raw bytes and decodes every complete frame. Malformed
// frames are skipped and reported; already-decoded events are always
// returned alongside any error.
func (d *Decoder) Feed(data []byte) ([]Event, error) {
	d.buffer.Write(data)

	text := d.buffer.String()
	parts := strings.Split(text, "\n\n")

	// The final part is either empty (stream ended on a delimiter) or
	// an incomplete frame to keep for the next read.
	pending := parts[len(parts)-1]
	complete := parts[:len(parts)-1]

	d.buffer.Reset()
	d.buffer.WriteString(pending)

	events := []Event{}
	var firstErr error
	for _, frame := range complete {
		event, err := decodeFrame(frame)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		events = append(events, event)
	}
	return events, firstErr
}

func decodeFrame(frame string) (Event, error) {
	var payload string
	for _, line := range strings.Split(frame, "\n") {
		if strings.HasPrefix(line, "data:") {
			payload = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			break
		}
	}
	if payload == "" {
		return Event{}, &ProtocolError{Frame: frame}
	}

	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return Event{}, &ProtocolError{Frame: frame}
	}
	switch event.Type {
	case EventStart, EventChunk, EventDone, EventError:
		return event, nil
	default:
		return Event{}, &ProtocolError{Frame: frame}
	}
}

// Session states.
const (
	StateIdle             = "idle"
	StateAwaitingResponse = "awaiting_response"
	StateError            = "error"
)

const maxHistory = 200

const errorMarker = "Something went wrong. Please try again."

// ErrRequestInFlight guards the one-request-at-a-time invariant: chunk
// ordering is undefined if two streams feed one session.
var ErrRequestInFlight = errors.New("a chat request is already awaiting a response")

// Session is the client-side conversation state machine. It appends a
// user message and an empty assistant placeholder on send, fills the
// placeholder from chunk events in arrival order, and never retries on
// failure: a partial response stays visible until the user resends.
type Session struct {
	state    string
	messages []Message
	lastErr  string
}

func NewSession() *Session {
	return &Session{state: StateIdle, messages: []Message{}}
}

func (s *Session) State() string {
	return s.state
}

// Messages returns a copy of the history.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) LastError() string {
	return s.lastErr
}

// Send appends the user message plus an empty assistant placeholder and
// moves to awaiting_response. A second send while awaiting is refused.
func (s *Session) Send(prompt string) error {
	if s.state == StateAwaitingResponse {
		return ErrRequestInFlight
	}

	// A new send clears a previous error state.
	s.state = StateAwaitingResponse
	s.lastErr = ""
	s.messages = append(s.messages,
		Message{Role: "user", Content: prompt},
		Message{Role: "assistant", Content: ""},
	)
	s.truncate()
	return nil
}

// HandleEvent applies one decoded stream event.
func (s *Session) HandleEvent(event Event) {
	if s.state != StateAwaitingResponse {
		return
	}

	switch event.Type {
	case EventStart:
		// Nothing to do; the placeholder already exists.
	case EventChunk:
		s.appendToPlaceholder(event.Content)
	case EventDone:
		s.state = StateIdle
	case EventError:
		message := event.Error
		if message == "" {
			message = "The assistant could not process that request."
		}
		s.fail(message)
	}
}

// HandleTransportFailure moves to the error state without losing
// already-appended chunks.
func (s *Session) HandleTransportFailure(err error) {
	if s.state != StateAwaitingResponse {
		return
	}
	s.fail((&TransportError{Cause: err}).Error())
}

func (s *Session) fail(message string) {
	s.lastErr = message
	if placeholder := s.placeholder(); placeholder != nil && placeholder.Content == "" {
		placeholder.Content = errorMarker
	}
	s.state = StateError
}

// AcknowledgeError returns an errored session to idle so the user can
// resend.
func (s *Session) AcknowledgeError() {
	if s.state == StateError {
		s.state = StateIdle
	}
}

func (s *Session) placeholder() *Message {
	if len(s.messages) == 0 {
		return nil
	}
	last := &s.messages[len(s.messages)-1]
	if last.Role != "assistant" {
		return nil
	}
	return last
}

func (s *Session) appendToPlaceholder(content string) {
	if placeholder := s.placeholder(); placeholder != nil {
		placeholder.Content += content
	}
}

func (s *Session) truncate() {
	if len(s.messages) > maxHistory {
		s.messages = s.messages[len(s.messages)-maxHistory:]
	}
}
