package projection

import (
	"context"
	"errors"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/kuraya-dely/dely/internal/eventstore"
)

// errSubscriptionDropped signals the all-streams subscription ended;
// the worker's caller is expected to resubscribe or terminate.
var errSubscriptionDropped = errors.New("projection: subscription dropped")

// record is one accepted all-streams event, resolved enough to decode
// and checkpoint.
type record struct {
	Envelope eventstore.Envelope
}

// allStreamsSubscriber is the minimal surface Worker needs from
// *esdb.Client, narrowed so it can be faked in tests.
type allStreamsSubscriber interface {
	SubscribeToAll(ctx context.Context, opts esdb.SubscribeToAllOptions) (*esdb.Subscription, error)
}

// subscribeFrom opens an all-streams catch-up subscription, resuming
// just after the given position (exclusive), or from the log's
// beginning when resumed is false. Grounded on the teacher's
// SubscribeToStream/SubscribeToAll catch-up pattern, generalized from a
// single-stream resume point to an all-streams one.
func subscribeFrom(ctx context.Context, client allStreamsSubscriber, pos eventstore.Position, resumed bool) (*esdb.Subscription, error) {
	from := esdb.AllPosition(esdb.Start{})
	if resumed {
		from = esdb.Position{Commit: pos.Commit, Prepare: pos.Prepare}
	}
	return client.SubscribeToAll(ctx, esdb.SubscribeToAllOptions{From: from})
}

// recv pulls the next accepted event off sub, skipping system events
// ($-prefixed types) which carry no domain meaning. A dropped
// subscription is reported as errSubscriptionDropped; the caller is
// expected to resubscribe or terminate.
func recv(sub *esdb.Subscription) (record, error) {
	for {
		event := sub.Recv()
		if event.SubscriptionDropped != nil {
			return record{}, errSubscriptionDropped
		}
		if event.EventAppeared == nil {
			continue
		}
		resolved := event.EventAppeared.Event
		if resolved == nil || resolved.Event == nil {
			continue
		}
		recorded := resolved.Event
		if len(recorded.EventType) > 0 && recorded.EventType[0] == '$' {
			continue
		}
		return record{Envelope: eventstore.Envelope{
			Stream:    recorded.StreamID,
			EventType: recorded.EventType,
			Data:      recorded.Data,
			Metadata:  recorded.UserMetadata,
			ID:        recorded.EventID,
			Revision:  recorded.EventNumber,
			Position:  eventstore.Position{Commit: recorded.Position.Commit, Prepare: recorded.Position.Prepare},
		}}, nil
	}
}
