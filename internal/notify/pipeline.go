package notify

import (
	"context"
	"errors"
	"log"
	"sync"

	"streamalerts/internal/common"
	"streamalerts/internal/config"
	"streamalerts/internal/dbmysql"
)

// Pipeline runs a domain event end to end: envelope construction, recipient
// resolution, per-recipient filtering, aggregation, persistence, and listener
// notification. One recipient's failure is logged and never blocks delivery
// to siblings.
type Pipeline struct {
	taxonomy   *Taxonomy
	resolver   *Resolver
	filter     *FilterEvaluator
	aggregator *Aggregator
	store      AlertStore
	counter    *UnreadCounter
	email      *EmailNotifier

	listeners []AlertListener

	eventChannel chan Event
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// NewPipeline wires the pipeline and starts the async worker pool. The
// counter is registered as the first mutation listener; more can be added
// before traffic starts.
func NewPipeline(
	cfg *config.Config,
	taxonomy *Taxonomy,
	resolver *Resolver,
	filter *FilterEvaluator,
	aggregator *Aggregator,
	store AlertStore,
	counter *UnreadCounter,
	email *EmailNotifier,
) (*Pipeline, error) {
	if err := taxonomy.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		taxonomy:     taxonomy,
		resolver:     resolver,
		filter:       filter,
		aggregator:   aggregator,
		store:        store,
		counter:      counter,
		email:        email,
		listeners:    []AlertListener{counter},
		eventChannel: make(chan Event, cfg.Notification.ChannelBufferSize),
		ctx:          ctx,
		cancel:       cancel,
	}

	workers := cfg.Notification.Workers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.processEvents()
	}

	return p, nil
}

// AddListener registers another mutation listener. Not safe to call once
// deliveries are in flight.
func (p *Pipeline) AddListener(listener AlertListener) {
	p.listeners = append(p.listeners, listener)
}

// Deliver runs one event through the pipeline synchronously.
func (p *Pipeline) Deliver(ctx context.Context, event Event) error {
	env, err := NewEnvelope(p.taxonomy, event)
	if err != nil {
		return err
	}

	recipients, err := p.resolver.Resolve(ctx, env)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	var emailRecipients []int64
	for _, recipientID := range recipients {
		if err := p.deliverInApp(ctx, recipientID, env); err != nil {
			log.Printf("Delivery of %s to recipient %d failed: %v", env.Type, recipientID, err)
		}

		if p.email != nil {
			suppressed, err := p.filter.IsSuppressed(ctx, recipientID, env.Type, common.ChannelEmail)
			if err != nil {
				log.Printf("Email filter check for recipient %d failed: %v", recipientID, err)
				continue
			}
			if !suppressed {
				emailRecipients = append(emailRecipients, recipientID)
			}
		}
	}

	if p.email != nil && len(emailRecipients) > 0 {
		p.email.Notify(ctx, env, emailRecipients)
	}

	return nil
}

func (p *Pipeline) deliverInApp(ctx context.Context, recipientID int64, env *Envelope) error {
	suppressed, err := p.filter.IsSuppressed(ctx, recipientID, env.Type, common.ChannelInApp)
	if err != nil {
		return err
	}
	if suppressed {
		return nil
	}

	alert, created, err := p.aggregator.Apply(ctx, recipientID, env)
	if err != nil {
		return err
	}

	for _, listener := range p.listeners {
		if created {
			listener.OnAlertCreated(alert)
		} else {
			listener.OnAlertUpdated(alert.RecipientID, alert.HighPriority, alert.HighPriority)
		}
	}
	return nil
}

// DeliverAsync queues an event for the worker pool. Drops the event with a
// log line when the channel is full rather than blocking the producer.
func (p *Pipeline) DeliverAsync(event Event) {
	select {
	case p.eventChannel <- event:
	case <-p.ctx.Done():
	default:
		log.Printf("Notification channel full, dropping event: %s", event.Type)
	}
}

func (p *Pipeline) processEvents() {
	defer p.wg.Done()

	for {
		select {
		case event := <-p.eventChannel:
			if err := p.Deliver(context.Background(), event); err != nil {
				log.Printf("Async delivery failed for %s: %v", event.Type, err)
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// MarkRead flips one alert to read and notifies listeners when a transition
// actually happened. Idempotent.
func (p *Pipeline) MarkRead(ctx context.Context, alertID string, recipientID int64) error {
	alert, changed, err := p.store.MarkRead(ctx, alertID, recipientID)
	if err != nil {
		return err
	}
	if changed {
		for _, listener := range p.listeners {
			listener.OnAlertRead(alert)
		}
	}
	return nil
}

// MarkAllRead transitions every unread alert of the recipient and applies
// one consolidated counter delta. Idempotent: a second call marks zero rows
// and produces a zero delta.
func (p *Pipeline) MarkAllRead(ctx context.Context, recipientID int64) error {
	high, normal, err := p.store.MarkAllRead(ctx, recipientID)
	if err != nil {
		return err
	}
	if high > 0 || normal > 0 {
		for _, listener := range p.listeners {
			listener.OnAllRead(recipientID, high, normal)
		}
	}
	return nil
}

// List returns a recipient's alerts, most recent first.
func (p *Pipeline) List(ctx context.Context, recipientID int64, limit, offset int, unreadOnly bool) ([]*dbmysql.Alert, error) {
	return p.store.ListByRecipient(ctx, recipientID, limit, offset, unreadOnly)
}

// UnreadCount returns the live tally for the polling endpoint.
func (p *Pipeline) UnreadCount(ctx context.Context, recipientID int64) (UnreadCount, error) {
	return p.counter.Get(ctx, recipientID)
}

// IsInvalidEvent reports whether an error came from envelope validation.
func IsInvalidEvent(err error) bool {
	var invalid *common.InvalidEventError
	return errors.As(err, &invalid)
}

// Shutdown stops the worker pool and waits for in-flight deliveries.
func (p *Pipeline) Shutdown() {
	p.cancel()
	p.wg.Wait()
	log.Println("Notification pipeline shutdown complete")
}
