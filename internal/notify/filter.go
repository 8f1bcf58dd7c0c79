package notify

import (
	"context"

	"streamalerts/internal/common"
)

// FilterEvaluator decides whether a recipient suppressed a notification on a
// given channel. Pure read: it maps the type to its category and checks for
// a suppression row. No row means deliver -- the opt-out default is a product
// decision, so a category added later is delivered to everyone until they
// turn it off.
type FilterEvaluator struct {
	taxonomy *Taxonomy
	prefs    PreferenceStore
}

func NewFilterEvaluator(taxonomy *Taxonomy, prefs PreferenceStore) *FilterEvaluator {
	return &FilterEvaluator{taxonomy: taxonomy, prefs: prefs}
}

func (f *FilterEvaluator) IsSuppressed(
	ctx context.Context,
	recipientID int64,
	notificationType common.NotificationType,
	channel common.Channel,
) (bool, error) {
	category := f.taxonomy.Category(notificationType)
	if category == common.CategoryNone {
		return false, nil
	}

	return f.prefs.Exists(ctx, recipientID, string(channel), string(category))
}
