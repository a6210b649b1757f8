package failover

import (
	"context"
	"fmt"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/jobmesh/eventbus"
	"github.com/maxpoletaev/jobmesh/internal/telemetry"
	"github.com/maxpoletaev/jobmesh/membership"
)

// SubscriberID is the ID the handler subscribes to the event bus with.
const SubscriberID = "failover"

type Config struct {
	Queue   Requeuer
	Timeout time.Duration
	Logger  kitlog.Logger
}

func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
		Logger:  kitlog.NewNopLogger(),
	}
}

// Handler returns the jobs of a removed worker to its group queue, so that
// other workers of the group can pick them up.
type Handler struct {
	queue   Requeuer
	timeout time.Duration
	logger  kitlog.Logger
}

func New(conf Config) *Handler {
	if conf.Logger == nil {
		conf.Logger = kitlog.NewNopLogger()
	}

	return &Handler{
		queue:   conf.Queue,
		timeout: conf.Timeout,
		logger:  conf.Logger,
	}
}

// Subscriber returns the bus subscriber. Subscribe it to membership.TopicNodeRemove.
func (h *Handler) Subscriber() eventbus.Subscriber {
	return eventbus.Subscriber{
		ID:     SubscriberID,
		Handle: h.handle,
	}
}

func (h *Handler) handle(event eventbus.Event) error {
	if event.Topic != membership.TopicNodeRemove {
		return nil
	}

	node, ok := membership.EventNode(event)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}

	if node.Type != membership.NodeTypeWorker {
		return nil
	}

	ctx := context.Background()

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)

		defer cancel()
	}

	n, err := h.queue.Requeue(ctx, node.Group, node.ID)
	if err != nil {
		return fmt.Errorf("requeue jobs of %s: %w", node, err)
	}

	if n > 0 {
		telemetry.RequeuedJobs.Add(float64(n))
		level.Info(h.logger).Log("msg", "jobs requeued", "worker", node.ID, "group", node.Group, "count", n)
	}

	return nil
}
