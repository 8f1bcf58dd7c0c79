package notify

import (
	"time"

	"streamalerts/internal/common"
)

// EntityRef is one role-slot reference: who or what an envelope points at.
// DisplayName is copied onto the alert so it survives entity deletion.
type EntityRef struct {
	ID          int64             `json:"id"`
	Type        common.EntityType `json:"type"`
	UniqueID    string            `json:"unique_id"`
	DisplayName string            `json:"display_name"`
}

// Event is the inbound domain-event descriptor: the type plus whatever
// entity references the event actually carries. RecipientIDs may be left
// empty for the resolver to fill in.
type Event struct {
	Type         common.NotificationType `json:"type"`
	Actor        *EntityRef              `json:"actor,omitempty"`
	Subject      *EntityRef              `json:"subject,omitempty"`
	Destination  *EntityRef              `json:"destination,omitempty"`
	Auxiliary    *EntityRef              `json:"auxiliary,omitempty"`
	RecipientIDs []int64                 `json:"recipient_ids,omitempty"`
	OccurredAt   time.Time               `json:"occurred_at,omitempty"`
}

// Envelope is one validated triggering event, pre-fan-out. Exactly one
// envelope exists per event regardless of how many recipients it reaches.
type Envelope struct {
	Type         common.NotificationType
	RecipientIDs []int64

	Actor       *EntityRef
	Subject     *EntityRef
	Destination *EntityRef
	Auxiliary   *EntityRef

	OccurredAt time.Time
}

// NewEnvelope validates an event against the taxonomy's slot spec for its
// type and produces the envelope. Pure construction, no side effects. A
// missing required slot yields *common.InvalidEventError; slots the type
// does not use are simply ignored.
func NewEnvelope(taxonomy *Taxonomy, event Event) (*Envelope, error) {
	spec, ok := taxonomy.Slots[event.Type]
	if !ok {
		return nil, &common.InvalidEventError{Type: event.Type, Missing: "type mapping"}
	}

	if spec.Actor && event.Actor == nil {
		return nil, &common.InvalidEventError{Type: event.Type, Missing: "actor"}
	}
	if spec.Subject && event.Subject == nil {
		return nil, &common.InvalidEventError{Type: event.Type, Missing: "subject"}
	}
	if spec.Destination && event.Destination == nil {
		return nil, &common.InvalidEventError{Type: event.Type, Missing: "destination"}
	}
	if spec.Auxiliary && event.Auxiliary == nil {
		return nil, &common.InvalidEventError{Type: event.Type, Missing: "auxiliary"}
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	env := &Envelope{
		Type:         event.Type,
		RecipientIDs: event.RecipientIDs,
		OccurredAt:   occurredAt,
	}
	if spec.Actor {
		env.Actor = event.Actor
	}
	if spec.Subject {
		env.Subject = event.Subject
	}
	if spec.Destination {
		env.Destination = event.Destination
	}
	if spec.Auxiliary {
		env.Auxiliary = event.Auxiliary
	}
	return env, nil
}
