package chat

import (
	"errors"
	"fmt"
	"testing"
)

func frame(payload string) []byte {
	return []byte("data: " + payload + "\n\n")
}

func TestDecoderReassemblesAcrossArbitrarySplits(t *testing.T) {
	full := string(frame(`{"type":"start"}`)) +
		string(frame(`{"type":"chunk","content":"Hel"}`)) +
		string(frame(`{"type":"chunk","content":"lo, "}`)) +
		string(frame(`{"type":"chunk","content":"world"}`)) +
		string(frame(`{"type":"done"}`))

	// Try every split point, including mid-delimiter.
	for split := 0; split <= len(full); split++ {
		decoder := &Decoder{}
		session := NewSession()
		if err := session.Send("hi"); err != nil {
			t.Fatal(err)
		}

		for _, part := range [][]byte{[]byte(full[:split]), []byte(full[split:])} {
			events, err := decoder.Feed(part)
			if err != nil {
				t.Fatalf("split %d: unexpected decode error: %v", split, err)
			}
			for _, event := range events {
				session.HandleEvent(event)
			}
		}

		messages := session.Messages()
		got := messages[len(messages)-1].Content
		if got != "Hello, world" {
			t.Fatalf("split %d: reconstructed %q, want %q", split, got, "Hello, world")
		}
		if session.State() != StateIdle {
			t.Fatalf("split %d: state = %q, want idle", split, session.State())
		}
	}
}

func TestDecoderBuffersIncompleteFrame(t *testing.T) {
	decoder := &Decoder{}

	events, err := decoder.Feed([]byte(`data: {"type":"chunk","content":"par`))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Fatalf("incomplete frame decoded early: %v", events)
	}

	events, err = decoder.Feed([]byte("tial\"}\n\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Content != "partial" {
		t.Fatalf("events = %v", events)
	}
}

func TestDecoderSkipsMalformedFrames(t *testing.T) {
	decoder := &Decoder{}

	input := string(frame(`{"type":"chunk","content":"a"}`)) +
		"data: not json\n\n" +
		"no data line here\n\n" +
		string(frame(`{"type":"chunk","content":"b"}`))

	events, err := decoder.Feed([]byte(input))
	var protocolErr *ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	// One bad frame never loses the good ones around it.
	if len(events) != 2 || events[0].Content != "a" || events[1].Content != "b" {
		t.Fatalf("events = %v", events)
	}
}

func TestSessionSendGuard(t *testing.T) {
	session := NewSession()
	if err := session.Send("first"); err != nil {
		t.Fatal(err)
	}
	if err := session.Send("second"); !errors.Is(err, ErrRequestInFlight) {
		t.Fatalf("expected ErrRequestInFlight, got %v", err)
	}

	session.HandleEvent(Event{Type: EventDone})
	if err := session.Send("third"); err != nil {
		t.Fatalf("send after done should work: %v", err)
	}
}

func TestSessionErrorWithEmptyPlaceholder(t *testing.T) {
	session := NewSession()
	if err := session.Send("hi"); err != nil {
		t.Fatal(err)
	}
	session.HandleEvent(Event{Type: EventError, Error: "backend exploded"})

	if session.State() != StateError {
		t.Errorf("state = %q, want error", session.State())
	}
	if session.LastError() != "backend exploded" {
		t.Errorf("LastError = %q", session.LastError())
	}
	messages := session.Messages()
	if messages[len(messages)-1].Content != errorMarker {
		t.Errorf("empty placeholder should get the error marker, got %q", messages[len(messages)-1].Content)
	}

	// The next send clears the error state.
	if err := session.Send("again"); err != nil {
		t.Fatal(err)
	}
	if session.State() != StateAwaitingResponse {
		t.Errorf("state = %q, want awaiting_response", session.State())
	}
	if session.LastError() != "" {
		t.Errorf("error not cleared: %q", session.LastError())
	}
}

func TestSessionTransportFailureKeepsChunks(t *testing.T) {
	session := NewSession()
	if err := session.Send("hi"); err != nil {
		t.Fatal(err)
	}
	session.HandleEvent(Event{Type: EventChunk, Content: "partial answ"})
	session.HandleTransportFailure(errors.New("connection reset"))

	if session.State() != StateError {
		t.Errorf("state = %q, want error", session.State())
	}
	messages := session.Messages()
	if messages[len(messages)-1].Content != "partial answ" {
		t.Errorf("partial content lost: %q", messages[len(messages)-1].Content)
	}
}

func TestSessionHistoryCap(t *testing.T) {
	session := NewSession()
	for i := 0; i < 150; i++ {
		if err := session.Send(fmt.Sprintf("message %d", i)); err != nil {
			t.Fatal(err)
		}
		session.HandleEvent(Event{Type: EventDone})
	}

	messages := session.Messages()
	if len(messages) != maxHistory {
		t.Fatalf("history length = %d, want %d", len(messages), maxHistory)
	}
	if messages[len(messages)-2].Content != "message 149" {
		t.Errorf("newest messages should survive truncation, got %q", messages[len(messages)-2].Content)
	}
}

func TestChunkText(t *testing.T) {
	chunks := chunkText("Hello, world", 5)
	want := []string{"Hello", ", wor", "ld"}
	if len(chunks) != len(want) {
		t.Fatalf("chunks = %v", chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}

	if empty := chunkText("", 5); len(empty) != 1 || empty[0] != "" {
		t.Errorf("empty text should yield one empty chunk: %v", empty)
	}
}
