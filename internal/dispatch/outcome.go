package dispatch

import (
	"time"

	"github.com/google/uuid"
	"github.com/sagejournal/sage/internal/command"
)

// Entity is the normalized record shape domain services return. Fields
// carries the entity's type-specific columns; the dispatcher never looks
// inside it.
type Entity struct {
	ID        uuid.UUID          `json:"id"`
	Kind      command.EntityType `json:"kind"`
	Fields    map[string]any     `json:"fields,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Reason is a stable failure code carried on non-OK outcomes.
type Reason string

const (
	// ReasonNoCommand: dispatch was called without a parsed command.
	ReasonNoCommand Reason = "no_command"
	// ReasonLowConfidence: the interpretation scored below the threshold
	// and was refused rather than guessed at.
	ReasonLowConfidence Reason = "low_confidence"
	// ReasonUnsupported: the entity's service does not implement the
	// requested capability.
	ReasonUnsupported Reason = "unsupported_operation"
	// ReasonMissingTarget: an update/complete command did not resolve to
	// a concrete entity id.
	ReasonMissingTarget Reason = "missing_target"
	// ReasonDownstream: the domain service call itself failed.
	ReasonDownstream Reason = "downstream_failure"
)

// Outcome is the single result shape every dispatch produces, success or
// not. Interpretation failures are data here, never panics or raw errors,
// so callers can always render something graceful.
type Outcome struct {
	OK         bool               `json:"ok"`
	Entity     *Entity            `json:"entity,omitempty"`
	Entities   []Entity           `json:"entities,omitempty"`
	Reason     Reason             `json:"reason,omitempty"`
	Detail     string             `json:"detail,omitempty"`
	EntityType command.EntityType `json:"entity_type,omitempty"`
	Intent     command.Intent     `json:"intent,omitempty"`
	Confidence float64            `json:"confidence,omitempty"`
}

func refuse(cmd *command.Command, reason Reason, detail string) Outcome {
	o := Outcome{OK: false, Reason: reason, Detail: detail}
	if cmd != nil {
		o.EntityType = cmd.Entity
		o.Intent = cmd.Intent
		o.Confidence = cmd.Confidence
	}
	return o
}
