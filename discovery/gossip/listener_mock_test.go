package gossip

import (
	"sync"

	"github.com/maxpoletaev/jobmesh/membership"
)

type call struct {
	appeared bool
	nodes    []membership.Node
}

type mockListener struct {
	mut   sync.Mutex
	calls []call
}

func (l *mockListener) NodesAppeared(nodes []membership.Node) error {
	l.mut.Lock()
	l.calls = append(l.calls, call{appeared: true, nodes: nodes})
	l.mut.Unlock()

	return nil
}

func (l *mockListener) NodesDisappeared(nodes []membership.Node) error {
	l.mut.Lock()
	l.calls = append(l.calls, call{appeared: false, nodes: nodes})
	l.mut.Unlock()

	return nil
}

func (l *mockListener) getCalls() []call {
	l.mut.Lock()
	defer l.mut.Unlock()

	calls := make([]call, len(l.calls))
	copy(calls, l.calls)

	return calls
}
