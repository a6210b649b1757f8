package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/jobmesh/api"
	"github.com/maxpoletaev/jobmesh/discovery/etcdreg"
	"github.com/maxpoletaev/jobmesh/discovery/gossip"
	"github.com/maxpoletaev/jobmesh/eventbus"
	"github.com/maxpoletaev/jobmesh/eventbus/kafkabridge"
	"github.com/maxpoletaev/jobmesh/failover"
	"github.com/maxpoletaev/jobmesh/jobqueue"
	_ "github.com/maxpoletaev/jobmesh/jobqueue/inmemory"
	_ "github.com/maxpoletaev/jobmesh/jobqueue/postgres"
	"github.com/maxpoletaev/jobmesh/membership"
)

type shutdownFunc func(ctx context.Context) error

var noopShutdown = func(ctx context.Context) error { return nil }

func setupLogger() (kitlog.Logger, shutdownFunc) {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	if !opts.Verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	return logger, noopShutdown
}

func setupSelf() (membership.Node, error) {
	nodeType, err := membership.ParseNodeType(opts.Node.Type)
	if err != nil {
		return membership.Node{}, err
	}

	created := time.Now().UnixMilli()

	id := opts.Node.ID
	if id == "" {
		host, err := os.Hostname()
		if err != nil {
			return membership.Node{}, fmt.Errorf("failed to get hostname: %w", err)
		}

		id = host + "-" + strconv.FormatInt(created, 36)
	}

	group := opts.Node.Group
	if nodeType == membership.NodeTypeCoordinator {
		group = ""
	} else if group == "" {
		return membership.Node{}, fmt.Errorf("group is required for %s nodes", nodeType)
	}

	return membership.Node{
		ID:      id,
		Type:    nodeType,
		Group:   group,
		Addr:    opts.Gossip.AdvertiseAddr,
		Created: created,
	}, nil
}

func setupManager(self membership.Node, bus *eventbus.Bus, logger kitlog.Logger) *membership.Manager {
	conf := membership.DefaultConfig()
	conf.Self = self
	conf.Publisher = bus
	conf.Logger = logger

	return membership.NewManager(conf)
}

// setupFailover subscribes the coordinator to worker removals, so that the jobs
// of a failed worker go back to its group queue.
func setupFailover(ctx context.Context, bus *eventbus.Bus, logger kitlog.Logger) (shutdownFunc, error) {
	queue, err := jobqueue.Open(ctx, jobqueue.Config{
		Backend: opts.Queue.Backend,
		DSN:     opts.Queue.DSN,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	conf := failover.DefaultConfig()
	conf.Queue = queue
	conf.Timeout = time.Millisecond * time.Duration(opts.Queue.Timeout)
	conf.Logger = logger

	handler := failover.New(conf)
	bus.Subscribe(handler.Subscriber(), membership.TopicNodeRemove)

	shutdown := func(ctx context.Context) error {
		logger.Log("msg", "closing job queue")
		bus.Unsubscribe(failover.SubscriberID, membership.TopicNodeRemove)

		return queue.Close()
	}

	return shutdown, nil
}

func setupKafkaBridge(bus *eventbus.Bus, logger kitlog.Logger) shutdownFunc {
	brokers := parseAddrs(opts.Kafka.Brokers)
	if len(brokers) == 0 {
		return noopShutdown
	}

	conf := kafkabridge.DefaultConfig()
	conf.Brokers = brokers
	conf.Topic = opts.Kafka.Topic
	conf.Logger = logger

	bridge := kafkabridge.New(conf)
	topics := []eventbus.Topic{membership.TopicNodeAdd, membership.TopicNodeRemove}
	bus.Subscribe(bridge.Subscriber(), topics...)

	level.Info(logger).Log("msg", "forwarding node events to kafka", "topic", conf.Topic)

	shutdown := func(ctx context.Context) error {
		bus.Unsubscribe(kafkabridge.SubscriberID, topics...)
		return bridge.Close()
	}

	return shutdown
}

func setupGossip(
	ctx context.Context,
	wg *sync.WaitGroup,
	self membership.Node,
	manager *membership.Manager,
	logger kitlog.Logger,
) (shutdownFunc, error) {
	conf := gossip.DefaultConfig()
	conf.Self = self
	conf.BindAddr = opts.Gossip.BindAddr
	conf.BindPort = opts.Gossip.BindPort
	conf.AdvertiseAddr = opts.Gossip.AdvertiseAddr
	conf.Seeds = parseAddrs(opts.Gossip.JoinAddrs)
	conf.ProbeTimeout = time.Millisecond * time.Duration(opts.Gossip.ProbeTimeout)
	conf.ProbeInterval = time.Millisecond * time.Duration(opts.Gossip.ProbeInterval)
	conf.Logger = logger

	transport, err := gossip.Start(conf, manager)
	if err != nil {
		return nil, err
	}

	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := transport.Join(ctx); err != nil {
			level.Error(logger).Log("msg", "failed to join cluster", "err", err)
		}
	}()

	shutdown := func(ctx context.Context) error {
		logger.Log("msg", "leaving cluster")
		return transport.Leave(5 * time.Second)
	}

	return shutdown, nil
}

func setupEtcd(
	ctx context.Context,
	wg *sync.WaitGroup,
	self membership.Node,
	manager *membership.Manager,
	logger kitlog.Logger,
) (shutdownFunc, error) {
	conf := etcdreg.DefaultConfig()
	conf.Self = self
	conf.Endpoints = parseAddrs(opts.Etcd.Endpoints)
	conf.Prefix = opts.Etcd.Prefix
	conf.LeaseTTL = opts.Etcd.LeaseTTL
	conf.Logger = logger

	registry, err := etcdreg.New(conf, manager)
	if err != nil {
		return nil, err
	}

	if err := registry.Register(ctx); err != nil {
		registry.Close(context.Background())
		return nil, err
	}

	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := registry.Run(ctx); err != nil {
			level.Error(logger).Log("msg", "etcd watch stopped", "err", err)
		}
	}()

	shutdown := func(ctx context.Context) error {
		logger.Log("msg", "deregistering from etcd")
		return registry.Close(ctx)
	}

	return shutdown, nil
}

func setupDiscovery(
	ctx context.Context,
	wg *sync.WaitGroup,
	self membership.Node,
	manager *membership.Manager,
	logger kitlog.Logger,
) (shutdownFunc, error) {
	switch opts.Discovery {
	case "etcd":
		return setupEtcd(ctx, wg, self, manager, logger)
	default:
		return setupGossip(ctx, wg, self, manager, logger)
	}
}

func setupAPIServer(ctx context.Context, wg *sync.WaitGroup, cluster api.Cluster, logger kitlog.Logger) {
	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := api.StartServer(ctx, cluster, logger, opts.API.BindAddr); err != nil {
			level.Error(logger).Log("msg", "API server stopped", "err", err)
		}
	}()
}
