package membership

//go:generate mockgen -source=facilities.go -destination=facilities_mock_test.go -package=membership

import "github.com/maxpoletaev/jobmesh/eventbus"

// EventPublisher delivers membership events synchronously to interested subscribers.
type EventPublisher interface {
	PublishSync(event eventbus.Event) error
}

// Listener receives batches of nodes observed by a membership transport.
type Listener interface {
	NodesAppeared(nodes []Node) error
	NodesDisappeared(nodes []Node) error
}
