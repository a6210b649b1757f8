package etcdreg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/maxpoletaev/jobmesh/discovery"
	"github.com/maxpoletaev/jobmesh/membership"
)

type Config struct {
	Self        membership.Node
	Endpoints   []string
	Prefix      string
	LeaseTTL    int64
	DialTimeout time.Duration
	Logger      kitlog.Logger
}

func DefaultConfig() Config {
	return Config{
		Endpoints:   []string{"127.0.0.1:2379"},
		Prefix:      "/jobmesh/nodes",
		LeaseTTL:    10,
		DialTimeout: 5 * time.Second,
		Logger:      kitlog.NewNopLogger(),
	}
}

// Registry announces the local node in etcd under a lease and watches the other
// nodes registered under the same prefix.
type Registry struct {
	client   *clientv3.Client
	conf     Config
	listener membership.Listener
	leaseID  clientv3.LeaseID
	logger   kitlog.Logger
}

func New(conf Config, listener membership.Listener) (*Registry, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   conf.Endpoints,
		DialTimeout: conf.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	return &Registry{
		client:   client,
		conf:     conf,
		listener: listener,
		logger:   conf.Logger,
	}, nil
}

// Register puts the local node under a lease and keeps the lease alive until ctx
// is done. Once the lease expires, other nodes see the local node as gone.
func (r *Registry) Register(ctx context.Context) error {
	value, err := discovery.EncodeNode(r.conf.Self)
	if err != nil {
		return fmt.Errorf("encode node: %w", err)
	}

	err = retry.Do(
		func() error {
			lease, err := r.client.Grant(ctx, r.conf.LeaseTTL)
			if err != nil {
				return fmt.Errorf("grant lease: %w", err)
			}

			key := nodeKey(r.conf.Prefix, r.conf.Self)
			if _, err := r.client.Put(ctx, key, string(value), clientv3.WithLease(lease.ID)); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}

			r.leaseID = lease.ID

			return nil
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(attempt uint, err error) {
			level.Warn(r.logger).Log("msg", "failed to register in etcd", "attempt", attempt+1, "err", err)
		}),
	)
	if err != nil {
		return err
	}

	keepAlive, err := r.client.KeepAlive(ctx, r.leaseID)
	if err != nil {
		return fmt.Errorf("keep alive: %w", err)
	}

	go func() {
		for range keepAlive {
		}

		level.Warn(r.logger).Log("msg", "etcd lease keep alive stopped", "lease", int64(r.leaseID))
	}()

	level.Info(r.logger).Log("msg", "registered in etcd", "key", nodeKey(r.conf.Prefix, r.conf.Self))

	return nil
}

// Run lists the currently registered nodes and then follows the changes until ctx
// is done or the watch fails.
func (r *Registry) Run(ctx context.Context) error {
	resp, err := r.client.Get(ctx, r.conf.Prefix+"/", clientv3.WithPrefix())
	if err != nil {
		return fmt.Errorf("list nodes: %w", err)
	}

	r.load(resp.Kvs)

	watch := r.client.Watch(ctx, r.conf.Prefix+"/",
		clientv3.WithPrefix(),
		clientv3.WithPrevKV(),
		clientv3.WithRev(resp.Header.Revision+1),
	)

	for wresp := range watch {
		if err := wresp.Err(); err != nil {
			return fmt.Errorf("watch nodes: %w", err)
		}

		r.dispatch(wresp.Events)
	}

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// Close revokes the lease, so that the local node disappears immediately.
func (r *Registry) Close(ctx context.Context) error {
	if r.leaseID != 0 {
		if _, err := r.client.Revoke(ctx, r.leaseID); err != nil {
			level.Warn(r.logger).Log("msg", "failed to revoke lease", "err", err)
		}
	}

	return r.client.Close()
}

func (r *Registry) load(kvs []*mvccpb.KeyValue) {
	nodes := make([]membership.Node, 0, len(kvs))

	for _, kv := range kvs {
		if node, ok := r.decode(kv); ok {
			nodes = append(nodes, node)
		}
	}

	if err := r.listener.NodesAppeared(nodes); err != nil {
		level.Error(r.logger).Log("msg", "failed to handle registered nodes", "err", err)
	}
}

// dispatch forwards watch events to the listener, preserving their order. Adjacent
// events of the same kind are grouped into one batch. A put over an existing record
// with different contents is reported as the removal of the old node followed by
// the addition of the new one.
func (r *Registry) dispatch(events []*clientv3.Event) {
	var (
		batch    []membership.Node
		appeared bool
	)

	flush := func() {
		if len(batch) == 0 {
			return
		}

		var err error
		if appeared {
			err = r.listener.NodesAppeared(batch)
		} else {
			err = r.listener.NodesDisappeared(batch)
		}

		if err != nil {
			level.Error(r.logger).Log("msg", "failed to handle node changes", "err", err)
		}

		batch = nil
	}

	add := func(node membership.Node, isPut bool) {
		if isPut != appeared {
			flush()
			appeared = isPut
		}

		batch = append(batch, node)
	}

	for _, ev := range events {
		var (
			node membership.Node
			ok   bool
		)

		isPut := ev.Type == clientv3.EventTypePut

		switch {
		case isPut:
			node, ok = r.decode(ev.Kv)
		case ev.PrevKv != nil:
			node, ok = r.decode(ev.PrevKv)
		default:
			node, ok = r.decodeKey(ev.Kv.Key)
		}

		if !ok {
			continue
		}

		// An overwritten record replaces the previous version of the node.
		if isPut && ev.PrevKv != nil {
			if prev, ok := r.decode(ev.PrevKv); ok && prev != node {
				add(prev, false)
			}
		}

		add(node, isPut)
	}

	flush()
}

func (r *Registry) decode(kv *mvccpb.KeyValue) (membership.Node, bool) {
	node, err := discovery.DecodeNode(kv.Value)
	if err != nil {
		level.Warn(r.logger).Log("msg", "skipping invalid node record", "key", string(kv.Key), "err", err)
		return membership.Node{}, false
	}

	if node.ID == r.conf.Self.ID {
		return membership.Node{}, false
	}

	return node, true
}

// decodeKey restores the type and ID of a deleted node when its value is unknown.
func (r *Registry) decodeKey(key []byte) (membership.Node, bool) {
	nodeType, id, err := parseNodeKey(r.conf.Prefix, string(key))
	if err != nil {
		level.Warn(r.logger).Log("msg", "skipping invalid node key", "key", string(key), "err", err)
		return membership.Node{}, false
	}

	if id == r.conf.Self.ID {
		return membership.Node{}, false
	}

	return membership.Node{ID: id, Type: nodeType}, true
}

func nodeKey(prefix string, node membership.Node) string {
	return fmt.Sprintf("%s/%s/%s", prefix, node.Type, node.ID)
}

func parseNodeKey(prefix, key string) (membership.NodeType, string, error) {
	rest := strings.TrimPrefix(key, prefix+"/")
	if rest == key {
		return 0, "", fmt.Errorf("key %q is outside of prefix %q", key, prefix)
	}

	typeName, id, found := strings.Cut(rest, "/")
	if !found || id == "" {
		return 0, "", fmt.Errorf("malformed node key: %q", key)
	}

	nodeType, err := membership.ParseNodeType(typeName)
	if err != nil {
		return 0, "", err
	}

	return nodeType, id, nil
}
