package common

import "context"

// MembershipService is the external collaborator that knows who belongs to
// what. The pipeline only decides which role is targeted per type; expanding
// a role into concrete person IDs is this collaborator's job.
type MembershipService interface {
	// Coordinators returns the coordinator person IDs of a group or organization.
	Coordinators(ctx context.Context, entityType EntityType, uniqueID string) ([]int64, error)

	// StreamOwner returns the person ID owning the given entity's stream.
	StreamOwner(ctx context.Context, entityType EntityType, uniqueID string) (int64, error)

	// Commenters returns the person IDs of everyone who commented on an activity.
	Commenters(ctx context.Context, activityID int64) ([]int64, error)
}

// EmailGateway delivers the email channel. Address lookup, rendering, and
// transport live outside the pipeline; the email channel only hands off the
// recipient and a plain subject/body here.
type EmailGateway interface {
	Send(ctx context.Context, recipientID int64, subject, body string) error
}
