package notify

import (
	"context"
	"fmt"

	"streamalerts/internal/common"
)

// Resolver expands an envelope's logical destination into concrete recipient
// person IDs. Which role is targeted per type is taxonomy data; expanding a
// role into people is the membership collaborator's job. Resolution is
// idempotent and side-effect-free; the actor never receives their own alert
// and duplicates are removed before filtering.
type Resolver struct {
	taxonomy   *Taxonomy
	membership common.MembershipService
}

func NewResolver(taxonomy *Taxonomy, membership common.MembershipService) *Resolver {
	return &Resolver{taxonomy: taxonomy, membership: membership}
}

func (r *Resolver) Resolve(ctx context.Context, env *Envelope) ([]int64, error) {
	// Explicit recipients on the event win over role resolution.
	if len(env.RecipientIDs) > 0 {
		return r.finish(env, env.RecipientIDs), nil
	}

	role := r.taxonomy.Roles[env.Type]
	switch role {
	case common.RoleExplicit:
		return nil, fmt.Errorf("type %s requires explicit recipients and none were given", env.Type)

	case common.RoleDestinationOwner:
		owner, err := r.membership.StreamOwner(ctx, env.Destination.Type, env.Destination.UniqueID)
		if err != nil {
			return nil, fmt.Errorf("resolving stream owner: %w", err)
		}
		return r.finish(env, []int64{owner}), nil

	case common.RoleCoordinators:
		coordinators, err := r.membership.Coordinators(ctx, env.Destination.Type, env.Destination.UniqueID)
		if err != nil {
			return nil, fmt.Errorf("resolving coordinators: %w", err)
		}
		return r.finish(env, coordinators), nil

	case common.RoleCommenters:
		commenters, err := r.membership.Commenters(ctx, env.Subject.ID)
		if err != nil {
			return nil, fmt.Errorf("resolving commenters: %w", err)
		}
		return r.finish(env, commenters), nil

	default:
		return nil, fmt.Errorf("type %s has no recipient role rule", env.Type)
	}
}

// finish de-duplicates and drops the actor.
func (r *Resolver) finish(env *Envelope, ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if env.Actor != nil && env.Actor.ID == id {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
