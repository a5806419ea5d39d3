package notify

import (
	"context"

	"github.com/hibiken/asynq"
)

// EventContext carries the facts message builders need about the triggering
// transition. Fields irrelevant to a given event are left zero.
type EventContext struct {
	BuyerID        string
	OfferID        string
	OfferReference string
	PropertyID     string
	Amount         float64
	Currency       string
	Method         string
	Status         string
	Reason         string
}

// FanoutService dispatches event notifications to the buyer and the admin
// recipient set. It is strictly best-effort: it never returns an error, a
// failed recipient never blocks the others, and the triggering state
// transition has already committed by the time it runs.
type FanoutService interface {
	Notify(ctx context.Context, event string, evctx EventContext)
}

// AdminRecipientResolver yields the admin recipient set. An empty set means
// the admin leg is silently skipped.
type AdminRecipientResolver interface {
	ListAdminRecipients(ctx context.Context) []string
}

// TaskEnqueuer is the slice of asynq.Client the fan-out uses, kept narrow so
// tests can capture enqueued tasks.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Pusher delivers one message to one device token. Failure is logged by the
// caller, never raised further.
type Pusher interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}
