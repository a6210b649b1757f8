package membership

import (
	"sync"

	"github.com/maxpoletaev/jobmesh/internal/generic"
	"github.com/maxpoletaev/jobmesh/internal/set"
)

type nodeSet struct {
	mut   sync.Mutex
	nodes set.Set[Node]
}

func newNodeSet() *nodeSet {
	return &nodeSet{
		nodes: set.New[Node](),
	}
}

// nodeStore keeps the tracked nodes grouped by type. Each type gets exactly one
// set, created on first use and never replaced.
type nodeStore struct {
	sets generic.SyncMap[NodeType, *nodeSet]
}

func (s *nodeStore) ensureSet(t NodeType) *nodeSet {
	ns, _ := s.sets.LoadOrCreate(t, newNodeSet)
	return ns
}

// addIfAbsent adds the node and reports whether an equal node was not there before.
func (s *nodeStore) addIfAbsent(node Node) bool {
	ns := s.ensureSet(node.Type)

	ns.mut.Lock()
	defer ns.mut.Unlock()

	return ns.nodes.AddIfAbsent(node)
}

// removeByID removes all nodes of the given type with the given ID.
func (s *nodeStore) removeByID(t NodeType, id string) []Node {
	ns, ok := s.sets.Load(t)
	if !ok {
		return nil
	}

	ns.mut.Lock()
	defer ns.mut.Unlock()

	return ns.nodes.RemoveFunc(func(n Node) bool {
		return n.ID == id
	})
}

// snapshot returns a copy of the nodes of the given type. The result is never nil.
func (s *nodeStore) snapshot(t NodeType) []Node {
	ns, ok := s.sets.Load(t)
	if !ok {
		return []Node{}
	}

	ns.mut.Lock()
	defer ns.mut.Unlock()

	return ns.nodes.Values()
}

// snapshotGroup is like snapshot, but only returns nodes of the given group.
func (s *nodeStore) snapshotGroup(t NodeType, group string) []Node {
	nodes := s.snapshot(t)
	filtered := make([]Node, 0, len(nodes))

	for _, n := range nodes {
		if n.Group == group {
			filtered = append(filtered, n)
		}
	}

	return filtered
}
