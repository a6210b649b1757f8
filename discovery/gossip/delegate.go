package gossip

import (
	"net"
	"strconv"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/memberlist"

	"github.com/maxpoletaev/jobmesh/discovery"
	"github.com/maxpoletaev/jobmesh/membership"
)

// metaDelegate advertises the local node metadata. No user messages or state are
// exchanged, memberlist only carries the metadata.
type metaDelegate struct {
	meta []byte
}

func (d *metaDelegate) NodeMeta(limit int) []byte {
	if len(d.meta) > limit {
		return nil
	}

	return d.meta
}

func (d *metaDelegate) NotifyMsg([]byte) {}

func (d *metaDelegate) GetBroadcasts(overhead, limit int) [][]byte {
	return nil
}

func (d *metaDelegate) LocalState(join bool) []byte {
	return nil
}

func (d *metaDelegate) MergeRemoteState(buf []byte, join bool) {}

// eventDelegate turns memberlist join, leave and update notifications into
// batches for the listener.
type eventDelegate struct {
	mut      sync.Mutex
	selfID   string
	known    map[string]membership.Node
	listener membership.Listener
	logger   kitlog.Logger
}

func newEventDelegate(selfID string, listener membership.Listener, logger kitlog.Logger) *eventDelegate {
	return &eventDelegate{
		selfID:   selfID,
		known:    make(map[string]membership.Node),
		listener: listener,
		logger:   logger,
	}
}

func (d *eventDelegate) decode(n *memberlist.Node) (membership.Node, bool) {
	if n.Name == d.selfID {
		return membership.Node{}, false
	}

	node, err := discovery.DecodeNode(n.Meta)
	if err != nil {
		level.Warn(d.logger).Log(
			"msg", "skipping gossip member with invalid metadata",
			"name", n.Name,
			"addr", net.JoinHostPort(n.Addr.String(), strconv.Itoa(int(n.Port))),
			"err", err,
		)

		return membership.Node{}, false
	}

	// Memberlist identifies members by name, so this is the only reliable ID.
	node.ID = n.Name

	return node, true
}

func (d *eventDelegate) NotifyJoin(n *memberlist.Node) {
	node, ok := d.decode(n)
	if !ok {
		return
	}

	d.mut.Lock()
	d.known[node.ID] = node
	d.mut.Unlock()

	if err := d.listener.NodesAppeared([]membership.Node{node}); err != nil {
		level.Error(d.logger).Log("msg", "failed to handle joined node", "id", node.ID, "err", err)
	}
}

func (d *eventDelegate) NotifyLeave(n *memberlist.Node) {
	if n.Name == d.selfID {
		return
	}

	d.mut.Lock()
	node, ok := d.known[n.Name]
	delete(d.known, n.Name)
	d.mut.Unlock()

	if !ok {
		if node, ok = d.decode(n); !ok {
			return
		}
	}

	if err := d.listener.NodesDisappeared([]membership.Node{node}); err != nil {
		level.Error(d.logger).Log("msg", "failed to handle left node", "id", node.ID, "err", err)
	}
}

// NotifyUpdate replaces the previously known version of the node, if the metadata
// has changed, by reporting the old node as gone and the new one as appeared.
func (d *eventDelegate) NotifyUpdate(n *memberlist.Node) {
	node, ok := d.decode(n)
	if !ok {
		return
	}

	d.mut.Lock()
	prev, known := d.known[node.ID]
	d.known[node.ID] = node
	d.mut.Unlock()

	if known && prev == node {
		return
	}

	if known {
		if err := d.listener.NodesDisappeared([]membership.Node{prev}); err != nil {
			level.Error(d.logger).Log("msg", "failed to handle updated node", "id", node.ID, "err", err)
		}
	}

	if err := d.listener.NodesAppeared([]membership.Node{node}); err != nil {
		level.Error(d.logger).Log("msg", "failed to handle updated node", "id", node.ID, "err", err)
	}
}
