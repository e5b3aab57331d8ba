// Package dispatch routes a parsed command to the domain service for its
// entity type behind a uniform capability surface, and normalizes every
// result — success, refusal, or failure — into a single Outcome shape.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sagejournal/sage/internal/command"
)

// DefaultThreshold is the confidence floor below which commands are
// refused instead of executed.
const DefaultThreshold = 0.5

// Capability interfaces. A domain service implements only the operations
// its entity type supports; the dispatcher discovers support by type
// assertion and reports unsupported capabilities as outcomes, not panics.
type (
	Creator interface {
		Create(ctx context.Context, params map[string]any) (*Entity, error)
	}
	Updater interface {
		Update(ctx context.Context, id uuid.UUID, params map[string]any) (*Entity, error)
	}
	Completer interface {
		Complete(ctx context.Context, id uuid.UUID) (*Entity, error)
	}
	Lister interface {
		List(ctx context.Context, filters map[string]any) ([]Entity, error)
	}
)

// Registry maps entity types to their domain service.
type Registry map[command.EntityType]any

// Request is one dispatch call. Target carries the resolved entity id for
// update/complete intents (uuid.Nil when none). Threshold overrides the
// dispatcher's confidence floor for this call when > 0.
type Request struct {
	Command   *command.Command
	Target    uuid.UUID
	Threshold float64
}

// Dispatcher holds the service registry and the global confidence
// threshold. It keeps no cross-call state: one value can serve concurrent
// callers, and each Dispatch performs at most one service call with no
// retries of its own.
type Dispatcher struct {
	registry  Registry
	threshold float64
	logger    *slog.Logger
}

// New builds a dispatcher. A threshold <= 0 selects DefaultThreshold.
func New(reg Registry, threshold float64, logger *slog.Logger) *Dispatcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Dispatcher{registry: reg, threshold: threshold, logger: logger}
}

// Threshold reports the global confidence floor.
func (d *Dispatcher) Threshold() float64 {
	return d.threshold
}

// Dispatch executes one parsed command against its domain service. Every
// path returns an Outcome; the only side effect is the single mapped
// service call, which happens exactly once and only when confidence clears
// the threshold.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Outcome {
	cmd := req.Command
	if cmd == nil {
		return refuse(nil, ReasonNoCommand, "no command to dispatch")
	}

	threshold := req.Threshold
	if threshold <= 0 {
		threshold = d.threshold
	}
	if cmd.Confidence < threshold {
		d.logger.Info("dispatch refused — low confidence",
			"command", cmd.Ref(),
			"confidence", cmd.Confidence,
			"threshold", threshold,
		)
		return refuse(cmd, ReasonLowConfidence,
			fmt.Sprintf("confidence %.2f below threshold %.2f", cmd.Confidence, threshold))
	}

	svc, ok := d.registry[cmd.Entity]
	if !ok {
		return refuse(cmd, ReasonUnsupported,
			fmt.Sprintf("no service registered for entity type %q", cmd.Entity))
	}

	switch cmd.Intent {
	case command.IntentCreate:
		c, ok := svc.(Creator)
		if !ok {
			return d.unsupported(cmd)
		}
		ent, err := c.Create(ctx, cmd.Params)
		return d.single(cmd, ent, err)

	case command.IntentUpdate:
		u, ok := svc.(Updater)
		if !ok {
			return d.unsupported(cmd)
		}
		if req.Target == uuid.Nil {
			return refuse(cmd, ReasonMissingTarget, "update command did not resolve to an entity")
		}
		ent, err := u.Update(ctx, req.Target, cmd.Params)
		return d.single(cmd, ent, err)

	case command.IntentComplete:
		c, ok := svc.(Completer)
		if !ok {
			return d.unsupported(cmd)
		}
		if req.Target == uuid.Nil {
			return refuse(cmd, ReasonMissingTarget, "complete command did not resolve to an entity")
		}
		ent, err := c.Complete(ctx, req.Target)
		return d.single(cmd, ent, err)

	case command.IntentView:
		l, ok := svc.(Lister)
		if !ok {
			return d.unsupported(cmd)
		}
		entities, err := l.List(ctx, cmd.Params)
		if err != nil {
			return d.downstream(cmd, err)
		}
		return Outcome{
			OK:         true,
			Entities:   entities,
			EntityType: cmd.Entity,
			Intent:     cmd.Intent,
			Confidence: cmd.Confidence,
		}

	default:
		return d.unsupported(cmd)
	}
}

func (d *Dispatcher) single(cmd *command.Command, ent *Entity, err error) Outcome {
	if err != nil {
		return d.downstream(cmd, err)
	}
	return Outcome{
		OK:         true,
		Entity:     ent,
		EntityType: cmd.Entity,
		Intent:     cmd.Intent,
		Confidence: cmd.Confidence,
	}
}

func (d *Dispatcher) unsupported(cmd *command.Command) Outcome {
	return refuse(cmd, ReasonUnsupported,
		fmt.Sprintf("%s does not support %s", cmd.Entity, cmd.Intent))
}

func (d *Dispatcher) downstream(cmd *command.Command, err error) Outcome {
	d.logger.Error("domain service call failed",
		"command", cmd.Ref(),
		"error", err,
	)
	return refuse(cmd, ReasonDownstream,
		fmt.Sprintf("%s: %v", cmd.Ref(), err))
}
