package failover

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/maxpoletaev/jobmesh/eventbus"
	"github.com/maxpoletaev/jobmesh/membership"
)

func newTestHandler(queue Requeuer) *Handler {
	conf := DefaultConfig()
	conf.Queue = queue

	return New(conf)
}

func TestHandler_RequeuesRemovedWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := NewMockRequeuer(ctrl)
	queue.EXPECT().Requeue(gomock.Any(), "g1", "w1").Return(3, nil)

	h := newTestHandler(queue)

	err := h.Subscriber().Handle(eventbus.Event{
		Topic:   membership.TopicNodeRemove,
		Payload: membership.Node{ID: "w1", Type: membership.NodeTypeWorker, Group: "g1"},
	})

	require.NoError(t, err)
}

func TestHandler_IgnoresOtherEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No calls are expected on the queue.
	h := newTestHandler(NewMockRequeuer(ctrl))
	handle := h.Subscriber().Handle

	require.NoError(t, handle(eventbus.Event{
		Topic:   membership.TopicNodeAdd,
		Payload: membership.Node{ID: "w1", Type: membership.NodeTypeWorker, Group: "g1"},
	}))

	require.NoError(t, handle(eventbus.Event{
		Topic:   membership.TopicNodeRemove,
		Payload: membership.Node{ID: "c1", Type: membership.NodeTypeClient, Group: "g1"},
	}))

	require.NoError(t, handle(eventbus.Event{
		Topic:   membership.TopicNodeRemove,
		Payload: membership.Node{ID: "k1", Type: membership.NodeTypeCoordinator},
	}))
}

func TestHandler_RequeueError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requeueErr := errors.New("db is down")
	queue := NewMockRequeuer(ctrl)
	queue.EXPECT().Requeue(gomock.Any(), "g1", "w1").Return(0, requeueErr)

	h := newTestHandler(queue)

	err := h.Subscriber().Handle(eventbus.Event{
		Topic:   membership.TopicNodeRemove,
		Payload: membership.Node{ID: "w1", Type: membership.NodeTypeWorker, Group: "g1"},
	})

	require.ErrorIs(t, err, requeueErr)
}

func TestHandler_BadPayload(t *testing.T) {
	h := newTestHandler(nil)

	err := h.Subscriber().Handle(eventbus.Event{Topic: membership.TopicNodeRemove, Payload: 42})
	require.Error(t, err)
}
