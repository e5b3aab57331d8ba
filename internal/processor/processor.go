// Package processor ties the pipeline together for bus-delivered chat
// messages: interpret, resolve the target entity, dispatch, and announce
// the outcome.
package processor

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sagejournal/sage/internal/bus"
	"github.com/sagejournal/sage/internal/command"
	"github.com/sagejournal/sage/internal/dispatch"
	"github.com/sagejournal/sage/internal/interpret"
	"github.com/sagejournal/sage/internal/store"
)

// ChatEvent is the inbound payload on journal.chat.message.
type ChatEvent struct {
	MessageID string `json:"message_id"`
	OwnerUUID string `json:"owner_uuid"`
	Message   string `json:"message"`
	SentAt    string `json:"sent_at,omitempty"` // RFC3339; empty means now
}

// publisher is the slice of the bus client the processor needs.
type publisher interface {
	Publish(subject string, data any) error
}

type Processor struct {
	store      *store.Store
	classifier *interpret.Classifier
	bus        publisher
	threshold  float64
	logger     *slog.Logger
}

func New(s *store.Store, c *interpret.Classifier, b publisher, threshold float64, logger *slog.Logger) *Processor {
	return &Processor{
		store:      s,
		classifier: c,
		bus:        b,
		threshold:  threshold,
		logger:     logger,
	}
}

// HandleChatMessage is the NATS handler for inbound chat messages. Every
// path ends in a published event: dispatched, clarify, or unmatched. The
// user never gets silence and never gets a crash.
func (p *Processor) HandleChatMessage(subject string, data []byte) {
	ctx := context.Background()

	var evt ChatEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse chat event", "error", err)
		return
	}

	owner, err := uuid.Parse(evt.OwnerUUID)
	if err != nil {
		p.logger.Error("invalid owner uuid", "owner_uuid", evt.OwnerUUID, "error", err)
		return
	}

	at := time.Now().UTC()
	if evt.SentAt != "" {
		if t, err := time.Parse(time.RFC3339, evt.SentAt); err == nil {
			at = t
		}
	}

	cmd, err := p.classifier.Interpret(evt.Message, at)
	if err != nil {
		p.logger.Warn("uninterpretable chat event", "message_id", evt.MessageID, "error", err)
		return
	}

	if cmd == nil {
		p.logger.Info("no command in message", "message_id", evt.MessageID)
		p.publish(bus.SubjectUnmatched, map[string]any{
			"message_id": evt.MessageID,
			"owner_uuid": evt.OwnerUUID,
		})
		return
	}

	outcome := p.Run(ctx, owner, cmd)

	if !outcome.OK && outcome.Reason == dispatch.ReasonLowConfidence {
		// Don't guess — ask. The command proposal rides along so the UI
		// can offer one-tap confirmation.
		p.publish(bus.SubjectClarify, map[string]any{
			"message_id": evt.MessageID,
			"owner_uuid": evt.OwnerUUID,
			"command":    cmd,
		})
		return
	}

	p.publish(bus.SubjectDispatched, map[string]any{
		"message_id": evt.MessageID,
		"owner_uuid": evt.OwnerUUID,
		"command":    cmd.Ref(),
		"outcome":    outcome,
	})

	p.logger.Info("chat message processed",
		"message_id", evt.MessageID,
		"command", cmd.Ref(),
		"confidence", cmd.Confidence,
		"ok", outcome.OK,
	)
}

// Run dispatches one parsed command for an owner, resolving named targets
// for complete/update intents first. Shared by the bus handler and the
// HTTP API.
func (p *Processor) Run(ctx context.Context, owner uuid.UUID, cmd *command.Command) dispatch.Outcome {
	services := p.store.For(owner)
	d := dispatch.New(services.Registry(), p.threshold, p.logger)

	req := dispatch.Request{Command: cmd}
	if cmd != nil && (cmd.Intent == command.IntentComplete || cmd.Intent == command.IntentUpdate) {
		req.Target = services.ResolveTarget(ctx, cmd)
	}
	return d.Dispatch(ctx, req)
}

func (p *Processor) publish(subject string, data any) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(subject, data); err != nil {
		p.logger.Error("failed to publish", "subject", subject, "error", err)
	}
}
