package notify

import (
	"fmt"
	"strconv"
	"strings"

	"streamalerts/internal/common"
)

// SlotSpec declares which role slots a notification type requires. The
// meaning of each slot is fixed per type (e.g. for FOLLOW_GROUP the actor is
// the follower and the destination is the group); construction rejects any
// event missing a required slot.
type SlotSpec struct {
	Actor       bool
	Subject     bool
	Destination bool
	Auxiliary   bool
}

// Taxonomy is the configuration data driving the pipeline: per-type slot
// requirements, suppression category, aggregation eligibility, priority,
// recipient targeting, and display templates. It is data, not behavior --
// new types are added here without touching pipeline logic.
type Taxonomy struct {
	Slots        map[common.NotificationType]SlotSpec
	Categories   map[common.NotificationType]common.Category
	Aggregatable map[common.NotificationType]bool
	HighPriority map[common.NotificationType]bool
	Roles        map[common.NotificationType]common.RecipientRole

	// Messages are token templates; tokens: {actor}, {destination},
	// {auxiliary}, {count}.
	Messages          map[common.NotificationType]string
	AggregateMessages map[common.NotificationType]string
}

// DefaultTaxonomy returns the built-in type tables.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Slots: map[common.NotificationType]SlotSpec{
			common.PostToPersonalStream:    {Actor: true, Subject: true, Destination: true},
			common.CommentToPersonalStream: {Actor: true, Subject: true, Destination: true},
			common.CommentToPersonalPost:   {Actor: true, Subject: true, Destination: true},
			common.CommentToCommentedPost:  {Actor: true, Subject: true, Destination: true, Auxiliary: true},
			common.FollowPerson:            {Actor: true, Destination: true},
			common.PostToGroupStream:       {Actor: true, Subject: true, Destination: true},
			common.CommentToGroupStream:    {Actor: true, Subject: true, Destination: true},
			common.FollowGroup:             {Actor: true, Destination: true},
			common.FlagPersonalActivity:    {Actor: true, Subject: true, Destination: true},
			common.FlagGroupActivity:       {Actor: true, Subject: true, Destination: true},
			common.RequestNewGroup:         {Actor: true, Destination: true, Auxiliary: true},
			common.RequestNewGroupApproved: {Auxiliary: true},
			common.RequestNewGroupDenied:   {Auxiliary: true},
			common.RequestGroupAccess:      {Actor: true, Destination: true},
		},
		Categories: map[common.NotificationType]common.Category{
			common.PostToPersonalStream:    common.CategoryPostToPersonalStream,
			common.CommentToPersonalStream: common.CategoryComment,
			common.CommentToPersonalPost:   common.CategoryComment,
			common.CommentToCommentedPost:  common.CategoryComment,
			common.FollowPerson:            common.CategoryFollowPerson,
			common.PostToGroupStream:       common.CategoryNone,
			common.CommentToGroupStream:    common.CategoryComment,
			common.FollowGroup:             common.CategoryFollowGroup,
			common.FlagPersonalActivity:    common.CategoryNone,
			common.FlagGroupActivity:       common.CategoryNone,
			common.RequestNewGroup:         common.CategoryNone,
			common.RequestNewGroupApproved: common.CategoryNone,
			common.RequestNewGroupDenied:   common.CategoryNone,
			common.RequestGroupAccess:      common.CategoryNone,
		},
		Aggregatable: map[common.NotificationType]bool{
			common.CommentToPersonalPost:  true,
			common.CommentToCommentedPost: true,
		},
		HighPriority: map[common.NotificationType]bool{
			common.FlagPersonalActivity: true,
			common.FlagGroupActivity:    true,
			common.RequestNewGroup:      true,
			common.RequestGroupAccess:   true,
		},
		Roles: map[common.NotificationType]common.RecipientRole{
			common.PostToPersonalStream:    common.RoleDestinationOwner,
			common.CommentToPersonalStream: common.RoleDestinationOwner,
			common.CommentToPersonalPost:   common.RoleDestinationOwner,
			common.CommentToCommentedPost:  common.RoleCommenters,
			common.FollowPerson:            common.RoleDestinationOwner,
			common.PostToGroupStream:       common.RoleCoordinators,
			common.CommentToGroupStream:    common.RoleCoordinators,
			common.FollowGroup:             common.RoleCoordinators,
			common.FlagPersonalActivity:    common.RoleCoordinators,
			common.FlagGroupActivity:       common.RoleCoordinators,
			common.RequestNewGroup:         common.RoleCoordinators,
			common.RequestNewGroupApproved: common.RoleExplicit,
			common.RequestNewGroupDenied:   common.RoleExplicit,
			common.RequestGroupAccess:      common.RoleCoordinators,
		},
		Messages: map[common.NotificationType]string{
			common.PostToPersonalStream:    "{actor} posted to your stream",
			common.CommentToPersonalStream: "{actor} commented on a post in your stream",
			common.CommentToPersonalPost:   "{actor} commented on your post",
			common.CommentToCommentedPost:  "{actor} commented on {auxiliary}'s post you commented on",
			common.FollowPerson:            "{actor} is now following you",
			common.PostToGroupStream:       "{actor} posted to the {destination} group",
			common.CommentToGroupStream:    "{actor} commented on a post in the {destination} group",
			common.FollowGroup:             "{actor} joined the {destination} group",
			common.FlagPersonalActivity:    "{actor} flagged a post in a stream in {destination}",
			common.FlagGroupActivity:       "{actor} flagged a post in a group stream in {destination}",
			common.RequestNewGroup:         "{actor} requested the new group {auxiliary}",
			common.RequestNewGroupApproved: "Your request for the group {auxiliary} was approved",
			common.RequestNewGroupDenied:   "Your request for the group {auxiliary} was denied",
			common.RequestGroupAccess:      "{actor} requested access to the {destination} group",
		},
		AggregateMessages: map[common.NotificationType]string{
			common.CommentToPersonalPost:  "{count} people commented on your post",
			common.CommentToCommentedPost: "{count} people commented on {auxiliary}'s post you commented on",
		},
	}
}

// Validate checks the tables are total over the known types. Called at
// startup so an unmapped type fails fast instead of surfacing mid-delivery.
func (t *Taxonomy) Validate() error {
	for _, nt := range common.AllNotificationTypes {
		if _, ok := t.Slots[nt]; !ok {
			return fmt.Errorf("taxonomy: no slot spec for type %s", nt)
		}
		if _, ok := t.Categories[nt]; !ok {
			return fmt.Errorf("taxonomy: no category for type %s", nt)
		}
		if _, ok := t.Roles[nt]; !ok {
			return fmt.Errorf("taxonomy: no recipient role for type %s", nt)
		}
		if _, ok := t.Messages[nt]; !ok {
			return fmt.Errorf("taxonomy: no message template for type %s", nt)
		}
		if t.Aggregatable[nt] {
			if _, ok := t.AggregateMessages[nt]; !ok {
				return fmt.Errorf("taxonomy: aggregatable type %s has no aggregate template", nt)
			}
			if !t.Slots[nt].Subject {
				return fmt.Errorf("taxonomy: aggregatable type %s has no subject slot to key on", nt)
			}
		}
	}
	return nil
}

// Category returns the suppression category for a type.
func (t *Taxonomy) Category(nt common.NotificationType) common.Category {
	return t.Categories[nt]
}

// RenderMessage fills the type's template from the envelope's role slots.
// Once an alert has absorbed more than one event the aggregate template is
// used instead.
func (t *Taxonomy) RenderMessage(env *Envelope, occurrenceCount int) string {
	template := t.Messages[env.Type]
	if occurrenceCount > 1 {
		if agg, ok := t.AggregateMessages[env.Type]; ok {
			template = agg
		}
	}

	replacer := strings.NewReplacer(
		"{actor}", slotName(env.Actor),
		"{destination}", slotName(env.Destination),
		"{auxiliary}", slotName(env.Auxiliary),
		"{count}", strconv.Itoa(occurrenceCount),
	)
	return replacer.Replace(template)
}

// BuildURL produces the in-app link target for an envelope.
func (t *Taxonomy) BuildURL(env *Envelope) string {
	switch {
	case env.Subject != nil:
		return fmt.Sprintf("#activity/%d", env.Subject.ID)
	case env.Destination != nil && env.Destination.UniqueID != "":
		return fmt.Sprintf("#profile/%s", env.Destination.UniqueID)
	case env.Auxiliary != nil && env.Auxiliary.UniqueID != "":
		return fmt.Sprintf("#profile/%s", env.Auxiliary.UniqueID)
	default:
		return ""
	}
}

func slotName(ref *EntityRef) string {
	if ref == nil {
		return ""
	}
	return ref.DisplayName
}
