package kafkabridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kitlog "github.com/go-kit/log"
	kafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpoletaev/jobmesh/eventbus"
	"github.com/maxpoletaev/jobmesh/membership"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}

	w.msgs = append(w.msgs, msgs...)

	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestBridge_ForwardsNodeEvents(t *testing.T) {
	writer := &fakeWriter{}
	bridge := newBridge(writer, DefaultConfig())

	bus := eventbus.New(kitlog.NewNopLogger())
	bus.Subscribe(bridge.Subscriber(), membership.TopicNodeAdd, membership.TopicNodeRemove)

	node := membership.Node{
		ID:      "w1",
		Type:    membership.NodeTypeWorker,
		Group:   "g1",
		Addr:    "10.0.0.1:7946",
		Created: 42,
	}

	require.NoError(t, bus.PublishSync(eventbus.Event{Topic: membership.TopicNodeAdd, Payload: node}))
	require.NoError(t, bus.PublishSync(eventbus.Event{Topic: membership.TopicNodeRemove, Payload: node}))
	require.Len(t, writer.msgs, 2)

	assert.Equal(t, []byte("w1"), writer.msgs[0].Key)

	var msg Message
	require.NoError(t, json.Unmarshal(writer.msgs[0].Value, &msg))
	assert.Equal(t, Message{
		Event:   "NODE_ADD",
		ID:      "w1",
		Type:    "worker",
		Group:   "g1",
		Addr:    "10.0.0.1:7946",
		Created: 42,
	}, msg)

	require.NoError(t, json.Unmarshal(writer.msgs[1].Value, &msg))
	assert.Equal(t, "NODE_REMOVE", msg.Event)

	require.NoError(t, bridge.Close())
	assert.True(t, writer.closed)
}

func TestBridge_Errors(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	bridge := newBridge(writer, DefaultConfig())
	handle := bridge.Subscriber().Handle

	err := handle(eventbus.Event{Topic: membership.TopicNodeAdd, Payload: membership.Node{ID: "n1"}})
	require.ErrorIs(t, err, writer.err)

	err = handle(eventbus.Event{Topic: membership.TopicNodeAdd, Payload: "not a node"})
	require.Error(t, err)
}
