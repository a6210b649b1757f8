package membership

import "github.com/maxpoletaev/jobmesh/eventbus"

const (
	// TopicNodeAdd is published when a relevant node starts being tracked.
	// The event payload is the Node.
	TopicNodeAdd eventbus.Topic = "NODE_ADD"

	// TopicNodeRemove is published when a tracked node is removed.
	// The event payload is the removed Node.
	TopicNodeRemove eventbus.Topic = "NODE_REMOVE"
)

// EventNode extracts the node carried by a membership event.
func EventNode(event eventbus.Event) (Node, bool) {
	node, ok := event.Payload.(Node)
	return node, ok
}
