package common

// NotificationType identifies the kind of domain event an alert came from.
type NotificationType string

const (
	PostToPersonalStream    NotificationType = "POST_TO_PERSONAL_STREAM"
	CommentToPersonalStream NotificationType = "COMMENT_TO_PERSONAL_STREAM"
	CommentToPersonalPost   NotificationType = "COMMENT_TO_PERSONAL_POST"
	CommentToCommentedPost  NotificationType = "COMMENT_TO_COMMENTED_POST"
	FollowPerson            NotificationType = "FOLLOW_PERSON"
	PostToGroupStream       NotificationType = "POST_TO_GROUP_STREAM"
	CommentToGroupStream    NotificationType = "COMMENT_TO_GROUP_STREAM"
	FollowGroup             NotificationType = "FOLLOW_GROUP"
	FlagPersonalActivity    NotificationType = "FLAG_PERSONAL_ACTIVITY"
	FlagGroupActivity       NotificationType = "FLAG_GROUP_ACTIVITY"
	RequestNewGroup         NotificationType = "REQUEST_NEW_GROUP"
	RequestNewGroupApproved NotificationType = "REQUEST_NEW_GROUP_APPROVED"
	RequestNewGroupDenied   NotificationType = "REQUEST_NEW_GROUP_DENIED"
	RequestGroupAccess      NotificationType = "REQUEST_GROUP_ACCESS"
)

// AllNotificationTypes lists every known type. Taxonomy validation checks its
// tables against this list so an unmapped type fails at startup, not at
// delivery time.
var AllNotificationTypes = []NotificationType{
	PostToPersonalStream,
	CommentToPersonalStream,
	CommentToPersonalPost,
	CommentToCommentedPost,
	FollowPerson,
	PostToGroupStream,
	CommentToGroupStream,
	FollowGroup,
	FlagPersonalActivity,
	FlagGroupActivity,
	RequestNewGroup,
	RequestNewGroupApproved,
	RequestNewGroupDenied,
	RequestGroupAccess,
}

// Category is the coarse grouping of notification types used for suppression
// preferences. Several types collapse into one category; CategoryNone marks
// types a user may not suppress.
type Category string

const (
	CategoryPostToPersonalStream Category = "POST_TO_PERSONAL_STREAM"
	CategoryComment              Category = "COMMENT"
	CategoryFollowPerson         Category = "FOLLOW_PERSON"
	CategoryFollowGroup          Category = "FOLLOW_GROUP"
	CategoryNone                 Category = ""
)

// Channel is a delivery mechanism. Preferences are scoped per channel, so a
// user can suppress a category in email while keeping the in-app alert.
type Channel string

const (
	ChannelInApp Channel = "IN_APP"
	ChannelEmail Channel = "EMAIL"
)

// EntityType describes what kind of entity a role slot points at.
type EntityType string

const (
	EntityPerson       EntityType = "PERSON"
	EntityGroup        EntityType = "GROUP"
	EntityOrganization EntityType = "ORGANIZATION"
	EntityActivity     EntityType = "ACTIVITY"
	EntityNotSet       EntityType = ""
)

// RecipientRole names which role the resolver targets for a type when the
// event does not carry explicit recipients.
type RecipientRole string

const (
	// RoleExplicit means recipients must be supplied on the event itself.
	RoleExplicit RecipientRole = "EXPLICIT"
	// RoleDestinationOwner targets the person the destination slot points at.
	RoleDestinationOwner RecipientRole = "DESTINATION_OWNER"
	// RoleCoordinators targets the coordinators of the destination entity.
	RoleCoordinators RecipientRole = "COORDINATORS"
	// RoleCommenters targets everyone who commented on the subject activity.
	RoleCommenters RecipientRole = "COMMENTERS"
)
