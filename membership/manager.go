package membership

import (
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/jobmesh/eventbus"
	"github.com/maxpoletaev/jobmesh/internal/multierror"
	"github.com/maxpoletaev/jobmesh/internal/telemetry"
)

var _ Listener = (*Manager)(nil)

// Manager keeps track of the remote nodes the local node is interested in, and
// notifies the subscribers whenever this view changes. It is safe for concurrent use.
type Manager struct {
	self      Node
	store     *nodeStore
	publisher EventPublisher
	logger    kitlog.Logger
}

// NewManager creates a manager. conf.Publisher is required, a nil conf.Logger
// disables logging.
func NewManager(conf Config) *Manager {
	if conf.Publisher == nil {
		panic("membership: manager requires a publisher")
	}

	if conf.Logger == nil {
		conf.Logger = kitlog.NewNopLogger()
	}

	return &Manager{
		self:      conf.Self,
		store:     new(nodeStore),
		publisher: conf.Publisher,
		logger:    conf.Logger,
	}
}

// Self returns the local node.
func (m *Manager) Self() Node {
	return m.self
}

// NodesAppeared starts tracking the given nodes, skipping the ones that are not
// relevant to the local node or already tracked. Nodes are processed one by one, in
// order, and each newly tracked node is announced before moving to the next one.
// A failed announcement does not undo the change and does not stop the batch,
// all failures are returned as a *multierror.Error keyed by node.
func (m *Manager) NodesAppeared(nodes []Node) error {
	if len(nodes) == 0 {
		return nil
	}

	errs := multierror.New[Node]()

	for _, node := range nodes {
		if !ShouldTrack(m.self, node) {
			continue
		}

		if !m.store.addIfAbsent(node) {
			continue
		}

		telemetry.TrackedNodes.WithLabelValues(node.Type.String()).Inc()

		if err := m.publish(TopicNodeAdd, node); err != nil {
			errs.Add(node, err)
		}

		level.Info(m.logger).Log(
			"msg", "node added",
			"id", node.ID,
			"type", node.Type,
			"group", node.Group,
			"addr", node.Addr,
		)
	}

	return errs.Combined()
}

// NodesDisappeared stops tracking the nodes with the same type and ID as the given
// ones. Each removed node is announced separately. Nodes that were never tracked
// are ignored.
func (m *Manager) NodesDisappeared(nodes []Node) error {
	if len(nodes) == 0 {
		return nil
	}

	errs := multierror.New[Node]()

	for _, gone := range nodes {
		for _, node := range m.store.removeByID(gone.Type, gone.ID) {
			telemetry.TrackedNodes.WithLabelValues(node.Type.String()).Dec()

			if err := m.publish(TopicNodeRemove, node); err != nil {
				errs.Add(node, err)
			}

			level.Info(m.logger).Log(
				"msg", "node removed",
				"id", node.ID,
				"type", node.Type,
				"group", node.Group,
				"addr", node.Addr,
			)
		}
	}

	return errs.Combined()
}

// Nodes returns a snapshot of the tracked nodes of the given type, in no particular order.
func (m *Manager) Nodes(t NodeType) []Node {
	return m.store.snapshot(t)
}

// GroupNodes returns a snapshot of the tracked nodes of the given type and group.
func (m *Manager) GroupNodes(t NodeType, group string) []Node {
	return m.store.snapshotGroup(t, group)
}

func (m *Manager) publish(topic eventbus.Topic, node Node) error {
	telemetry.NodeEvents.WithLabelValues(string(topic)).Inc()

	err := m.publisher.PublishSync(eventbus.Event{
		Topic:   topic,
		Payload: node,
	})
	if err != nil {
		telemetry.NodeEventFailures.WithLabelValues(string(topic)).Inc()

		level.Error(m.logger).Log(
			"msg", "failed to publish node event",
			"topic", topic,
			"id", node.ID,
			"err", err,
		)

		return fmt.Errorf("publish %s: %w", topic, err)
	}

	return nil
}
