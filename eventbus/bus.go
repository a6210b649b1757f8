package eventbus

import (
	"fmt"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/jobmesh/internal/multierror"
)

// Topic names a class of events subscribers can listen to.
type Topic string

// Event is a single message published on the bus.
type Event struct {
	Topic   Topic
	Payload interface{}
}

// Handler processes an event. Returning an error does not stop the delivery of
// the event to other subscribers.
type Handler func(Event) error

// Subscriber is a named event handler. The ID is used to unsubscribe and to
// report failures.
type Subscriber struct {
	ID     string
	Handle Handler
}

// Bus is an in-process publish/subscribe hub. Subscribers are invoked in the order
// they were subscribed.
type Bus struct {
	mut    sync.RWMutex
	subs   map[Topic][]Subscriber
	wg     sync.WaitGroup
	logger kitlog.Logger
}

func New(logger kitlog.Logger) *Bus {
	return &Bus{
		subs:   make(map[Topic][]Subscriber),
		logger: logger,
	}
}

// Subscribe registers the subscriber for the given topics. Subscribing the same
// ID to a topic twice replaces the previous handler.
func (b *Bus) Subscribe(sub Subscriber, topics ...Topic) {
	b.mut.Lock()
	defer b.mut.Unlock()

	for _, topic := range topics {
		subs := b.subs[topic]
		replaced := false

		for i := range subs {
			if subs[i].ID == sub.ID {
				subs[i] = sub
				replaced = true
			}
		}

		if !replaced {
			b.subs[topic] = append(subs, sub)
		}
	}
}

// Unsubscribe removes the subscriber with the given ID from the topics.
func (b *Bus) Unsubscribe(id string, topics ...Topic) {
	b.mut.Lock()
	defer b.mut.Unlock()

	for _, topic := range topics {
		subs := b.subs[topic]
		kept := make([]Subscriber, 0, len(subs))

		for _, sub := range subs {
			if sub.ID != id {
				kept = append(kept, sub)
			}
		}

		if len(kept) == 0 {
			delete(b.subs, topic)
		} else {
			b.subs[topic] = kept
		}
	}
}

func (b *Bus) subscribers(topic Topic) []Subscriber {
	b.mut.RLock()
	defer b.mut.RUnlock()

	subs := make([]Subscriber, len(b.subs[topic]))
	copy(subs, b.subs[topic])

	return subs
}

// PublishSync delivers the event to every subscriber of its topic and returns only
// after all of them have processed it. Failures are collected per subscriber ID.
func (b *Bus) PublishSync(event Event) error {
	errs := multierror.New[string]()

	for _, sub := range b.subscribers(event.Topic) {
		if err := sub.Handle(event); err != nil {
			errs.Add(sub.ID, fmt.Errorf("subscriber %s: %w", sub.ID, err))
		}
	}

	return errs.Combined()
}

// PublishAsync delivers the event in the background. Failures are logged.
func (b *Bus) PublishAsync(event Event) {
	b.wg.Add(1)

	go func() {
		defer b.wg.Done()

		if err := b.PublishSync(event); err != nil {
			level.Error(b.logger).Log("msg", "failed to deliver event", "topic", event.Topic, "err", err)
		}
	}()
}

// Wait blocks until all asynchronous deliveries started so far are complete.
func (b *Bus) Wait() {
	b.wg.Wait()
}
