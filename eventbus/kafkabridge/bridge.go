package kafkabridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	kafka "github.com/segmentio/kafka-go"

	"github.com/maxpoletaev/jobmesh/eventbus"
	"github.com/maxpoletaev/jobmesh/membership"
)

// SubscriberID is the ID the bridge subscribes to the event bus with.
const SubscriberID = "kafka-bridge"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	Logger       kitlog.Logger
}

func DefaultConfig() Config {
	return Config{
		Topic:        "jobmesh.membership",
		WriteTimeout: 5 * time.Second,
		Logger:       kitlog.NewNopLogger(),
	}
}

// Message is the JSON value of a record written for every membership event.
type Message struct {
	Event   string `json:"event"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Group   string `json:"group"`
	Addr    string `json:"addr,omitempty"`
	Created int64  `json:"created"`
}

// Bridge forwards membership events to a Kafka topic, keyed by node ID so that
// all events of one node land in the same partition.
type Bridge struct {
	writer  messageWriter
	timeout time.Duration
	logger  kitlog.Logger
}

func New(conf Config) *Bridge {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(conf.Brokers...),
		Topic:        conf.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return newBridge(writer, conf)
}

func newBridge(writer messageWriter, conf Config) *Bridge {
	if conf.Logger == nil {
		conf.Logger = kitlog.NewNopLogger()
	}

	return &Bridge{
		writer:  writer,
		timeout: conf.WriteTimeout,
		logger:  conf.Logger,
	}
}

// Subscriber returns the bus subscriber writing node events to Kafka. Subscribe it
// to membership.TopicNodeAdd and membership.TopicNodeRemove.
func (b *Bridge) Subscriber() eventbus.Subscriber {
	return eventbus.Subscriber{
		ID:     SubscriberID,
		Handle: b.handle,
	}
}

func (b *Bridge) handle(event eventbus.Event) error {
	node, ok := membership.EventNode(event)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}

	value, err := json.Marshal(Message{
		Event:   string(event.Topic),
		ID:      node.ID,
		Type:    node.Type.String(),
		Group:   node.Group,
		Addr:    node.Addr,
		Created: node.Created,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	ctx := context.Background()

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)

		defer cancel()
	}

	err = b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(node.ID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	level.Debug(b.logger).Log("msg", "node event forwarded", "event", event.Topic, "node", node)

	return nil
}

func (b *Bridge) Close() error {
	return b.writer.Close()
}
