package processor

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/sagejournal/sage/internal/bus"
	"github.com/sagejournal/sage/internal/command"
	"github.com/sagejournal/sage/internal/interpret"
	"github.com/sagejournal/sage/internal/store"
)

type capturedEvent struct {
	subject string
	data    any
}

type fakeBus struct {
	events []capturedEvent
}

func (f *fakeBus) Publish(subject string, data any) error {
	f.events = append(f.events, capturedEvent{subject, data})
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestProcessor builds a processor over an unconnected store. Only paths
// that refuse before any service call are exercised here; successful
// dispatches are covered by the dispatch package tests.
func newTestProcessor(b *fakeBus, threshold float64) *Processor {
	return New(new(store.Store), interpret.NewDefault(), b, threshold, quietLogger())
}

func TestHandleChatMessage_Unmatched(t *testing.T) {
	b := &fakeBus{}
	p := newTestProcessor(b, 0.5)

	owner := uuid.NewString()
	p.HandleChatMessage(bus.SubjectChatMessage, []byte(
		`{"message_id":"m1","owner_uuid":"`+owner+`","message":"the weather is nice"}`))

	if len(b.events) != 1 {
		t.Fatalf("published %d events, want 1", len(b.events))
	}
	if b.events[0].subject != bus.SubjectUnmatched {
		t.Errorf("subject = %q, want %q", b.events[0].subject, bus.SubjectUnmatched)
	}
	payload, _ := b.events[0].data.(map[string]any)
	if payload["message_id"] != "m1" || payload["owner_uuid"] != owner {
		t.Errorf("payload = %v", payload)
	}
}

func TestHandleChatMessage_LowConfidenceAsksToClarify(t *testing.T) {
	b := &fakeBus{}
	// Threshold above anything a weak trigger can score.
	p := newTestProcessor(b, 0.99)

	p.HandleChatMessage(bus.SubjectChatMessage, []byte(
		`{"message_id":"m2","owner_uuid":"`+uuid.NewString()+`","message":"feeling meh"}`))

	if len(b.events) != 1 {
		t.Fatalf("published %d events, want 1", len(b.events))
	}
	if b.events[0].subject != bus.SubjectClarify {
		t.Errorf("subject = %q, want %q", b.events[0].subject, bus.SubjectClarify)
	}
	payload, _ := b.events[0].data.(map[string]any)
	if payload["command"] == nil {
		t.Error("clarify event missing the command proposal")
	}
}

func TestHandleChatMessage_BadPayloadsDropSilently(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{not json`},
		{"bad owner uuid", `{"message_id":"m3","owner_uuid":"nope","message":"hi"}`},
		{"blank message", `{"message_id":"m4","owner_uuid":"` + uuid.NewString() + `","message":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBus{}
			p := newTestProcessor(b, 0.5)
			p.HandleChatMessage(bus.SubjectChatMessage, []byte(tt.data))
			if len(b.events) != 0 {
				t.Errorf("published %d events, want none", len(b.events))
			}
		})
	}
}

func TestHandleChatMessage_NilBus(t *testing.T) {
	// A processor without a bus must still be safe to run.
	p := New(new(store.Store), interpret.NewDefault(), nil, 0.99, quietLogger())
	p.HandleChatMessage(bus.SubjectChatMessage, []byte(
		`{"message_id":"m5","owner_uuid":"`+uuid.NewString()+`","message":"feeling meh"}`))
}

func TestHandleChatMessage_SentAtAnchorsDates(t *testing.T) {
	b := &fakeBus{}
	p := newTestProcessor(b, 0.99)

	p.HandleChatMessage(bus.SubjectChatMessage, []byte(
		`{"message_id":"m6","owner_uuid":"`+uuid.NewString()+`","message":"feeling meh today","sent_at":"2026-03-15T10:00:00Z"}`))

	if len(b.events) != 1 || b.events[0].subject != bus.SubjectClarify {
		t.Fatalf("events = %v", b.events)
	}
	payload, _ := b.events[0].data.(map[string]any)
	cmd, ok := payload["command"].(*command.Command)
	if !ok {
		t.Fatal("clarify payload command has unexpected type")
	}
	if got := cmd.Param("entry_date"); got != "2026-03-15" {
		t.Errorf("entry_date = %q, want anchored to sent_at", got)
	}
}
