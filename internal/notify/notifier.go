package notify

import (
	"context"
	"fmt"
	"log"

	"streamalerts/internal/common"
)

// EmailNotifier forwards filter-surviving envelopes on the email channel.
// Anything beyond the recipient and a plain subject/body -- address lookup,
// HTML rendering, transport -- belongs to the gateway collaborator.
type EmailNotifier struct {
	taxonomy *Taxonomy
	gateway  common.EmailGateway
}

func NewEmailNotifier(taxonomy *Taxonomy, gateway common.EmailGateway) *EmailNotifier {
	return &EmailNotifier{taxonomy: taxonomy, gateway: gateway}
}

// Notify hands one envelope off for each recipient. Failures are logged per
// recipient and never block the others.
func (n *EmailNotifier) Notify(ctx context.Context, env *Envelope, recipientIDs []int64) {
	message := n.taxonomy.RenderMessage(env, 1)
	subject := fmt.Sprintf("Stream notification: %s", message)

	for _, recipientID := range recipientIDs {
		if err := n.gateway.Send(ctx, recipientID, subject, message); err != nil {
			log.Printf("Email notify failed for recipient %d: %v", recipientID, err)
		}
	}
}
