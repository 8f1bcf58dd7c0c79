package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamalerts/internal/common"
)

func fullEvent(nt common.NotificationType) Event {
	return Event{
		Type:        nt,
		Actor:       &EntityRef{ID: 1, Type: common.EntityPerson, UniqueID: "jsmith", DisplayName: "Jane Smith"},
		Subject:     &EntityRef{ID: 42, Type: common.EntityActivity},
		Destination: &EntityRef{ID: 2, Type: common.EntityPerson, UniqueID: "bjones", DisplayName: "Bob Jones"},
		Auxiliary:   &EntityRef{ID: 3, Type: common.EntityGroup, UniqueID: "engineering", DisplayName: "Engineering"},
	}
}

func TestNewEnvelopeAcceptsFullyPopulatedEvents(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	for _, nt := range common.AllNotificationTypes {
		env, err := NewEnvelope(taxonomy, fullEvent(nt))
		require.NoError(t, err, "type %s", nt)
		assert.Equal(t, nt, env.Type)
		assert.False(t, env.OccurredAt.IsZero())
	}
}

func TestNewEnvelopeRejectsMissingRequiredSlots(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	for _, nt := range common.AllNotificationTypes {
		spec := taxonomy.Slots[nt]

		cases := []struct {
			name     string
			required bool
			strip    func(*Event)
		}{
			{"actor", spec.Actor, func(e *Event) { e.Actor = nil }},
			{"subject", spec.Subject, func(e *Event) { e.Subject = nil }},
			{"destination", spec.Destination, func(e *Event) { e.Destination = nil }},
			{"auxiliary", spec.Auxiliary, func(e *Event) { e.Auxiliary = nil }},
		}

		for _, tc := range cases {
			if !tc.required {
				continue
			}
			event := fullEvent(nt)
			tc.strip(&event)

			_, err := NewEnvelope(taxonomy, event)
			require.Error(t, err, "type %s without %s", nt, tc.name)

			var invalid *common.InvalidEventError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, nt, invalid.Type)
			assert.Equal(t, tc.name, invalid.Missing)
		}
	}
}

func TestNewEnvelopeIgnoresUnusedSlots(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	// FOLLOW_PERSON only uses actor and destination; the rest is dropped.
	env, err := NewEnvelope(taxonomy, fullEvent(common.FollowPerson))
	require.NoError(t, err)
	assert.NotNil(t, env.Actor)
	assert.NotNil(t, env.Destination)
	assert.Nil(t, env.Subject)
	assert.Nil(t, env.Auxiliary)
}

func TestNewEnvelopeRejectsUnknownType(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	_, err := NewEnvelope(taxonomy, Event{Type: "LIKE"})
	var invalid *common.InvalidEventError
	require.ErrorAs(t, err, &invalid)
}

func TestNewEnvelopePreservesOccurredAt(t *testing.T) {
	taxonomy := DefaultTaxonomy()
	occurred := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	event := fullEvent(common.CommentToPersonalPost)
	event.OccurredAt = occurred

	env, err := NewEnvelope(taxonomy, event)
	require.NoError(t, err)
	assert.Equal(t, occurred, env.OccurredAt)
}

func TestNewEnvelopeCarriesExplicitRecipients(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	event := fullEvent(common.RequestNewGroupApproved)
	event.RecipientIDs = []int64{5, 6}

	env, err := NewEnvelope(taxonomy, event)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, env.RecipientIDs)
}
