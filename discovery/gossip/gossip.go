package gossip

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/memberlist"

	"github.com/maxpoletaev/jobmesh/discovery"
	"github.com/maxpoletaev/jobmesh/membership"
)

// Transport discovers cluster members with the memberlist gossip protocol and
// reports them to the listener.
type Transport struct {
	list   *memberlist.Memberlist
	conf   Config
	logger kitlog.Logger
}

// Start creates the local memberlist instance. The node metadata advertised to the
// other members is derived from conf.Self.
func Start(conf Config, listener membership.Listener) (*Transport, error) {
	meta, err := discovery.EncodeNode(conf.Self)
	if err != nil {
		return nil, fmt.Errorf("encode node metadata: %w", err)
	}

	if len(meta) > memberlist.MetaMaxSize {
		return nil, fmt.Errorf("node metadata is too large: %d > %d", len(meta), memberlist.MetaMaxSize)
	}

	mlConf := memberlist.DefaultLANConfig()
	mlConf.Name = conf.Self.ID
	mlConf.BindAddr = conf.BindAddr
	mlConf.BindPort = conf.BindPort
	mlConf.AdvertiseAddr = conf.AdvertiseAddr
	mlConf.AdvertisePort = conf.AdvertisePort
	mlConf.ProbeInterval = conf.ProbeInterval
	mlConf.ProbeTimeout = conf.ProbeTimeout
	mlConf.LogOutput = kitlog.NewStdlibAdapter(level.Debug(conf.Logger))
	mlConf.Delegate = &metaDelegate{meta: meta}
	mlConf.Events = newEventDelegate(conf.Self.ID, listener, conf.Logger)

	if mlConf.AdvertisePort == 0 {
		mlConf.AdvertisePort = conf.BindPort
	}

	list, err := memberlist.Create(mlConf)
	if err != nil {
		return nil, fmt.Errorf("failed to create memberlist: %w", err)
	}

	return &Transport{
		list:   list,
		conf:   conf,
		logger: conf.Logger,
	}, nil
}

// Join contacts the seed nodes, retrying with backoff until at least one of them
// responds or the attempts are exhausted.
func (t *Transport) Join(ctx context.Context) error {
	if len(t.conf.Seeds) == 0 {
		return nil
	}

	err := retry.Do(
		func() error {
			n, err := t.list.Join(t.conf.Seeds)
			if err != nil {
				return err
			}

			level.Info(t.logger).Log("msg", "joined cluster", "contacted", n)

			return nil
		},
		retry.Context(ctx),
		retry.Attempts(t.conf.JoinAttempts),
		retry.Delay(t.conf.JoinDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(attempt uint, err error) {
			level.Warn(t.logger).Log("msg", "failed to join cluster", "attempt", attempt+1, "err", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to join memberlist: %w", err)
	}

	return nil
}

// Leave broadcasts the intent to leave and shuts the transport down.
func (t *Transport) Leave(timeout time.Duration) error {
	level.Info(t.logger).Log("msg", "leaving gossip cluster")

	if err := t.list.Leave(timeout); err != nil {
		level.Warn(t.logger).Log("msg", "failed to leave gracefully", "err", err)
	}

	return t.list.Shutdown()
}

// NumMembers returns the number of alive members, including the local node.
func (t *Transport) NumMembers() int {
	return t.list.NumMembers()
}
