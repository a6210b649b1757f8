package main

import (
	"strings"
)

var opts struct {
	Node struct {
		ID    string `long:"id" env:"ID" description:"unique node id, generated when empty"`
		Type  string `long:"type" env:"TYPE" required:"true" choice:"coordinator" choice:"worker" choice:"client" description:"node role"`
		Group string `long:"group" env:"GROUP" description:"node group, ignored for coordinators"`
	} `group:"node" namespace:"node" env-namespace:"NODE"`

	Discovery string `long:"discovery" env:"DISCOVERY" choice:"gossip" choice:"etcd" default:"gossip" description:"membership transport"`

	Gossip struct {
		BindAddr      string `long:"bind-addr" description:"address to bind gossip listener" env:"BIND_ADDR" default:"0.0.0.0"`
		BindPort      int    `long:"bind-port" description:"port to bind gossip listener" env:"BIND_PORT" default:"7946"`
		AdvertiseAddr string `long:"advertise-addr" description:"address to advertise to other nodes" env:"ADVERTISE_ADDR"`
		JoinAddrs     string `long:"join-addrs" description:"comma-separated list of nodes to join" env:"JOIN_ADDRS"`
		ProbeTimeout  int    `long:"probe-timeout" description:"failure detection timeout (ms)" env:"PROBE_TIMEOUT" default:"500"`
		ProbeInterval int    `long:"probe-interval" description:"failure detection interval (ms)" env:"PROBE_INTERVAL" default:"1000"`
	} `group:"gossip" namespace:"gossip" env-namespace:"GOSSIP"`

	Etcd struct {
		Endpoints string `long:"endpoints" description:"comma-separated list of etcd endpoints" env:"ENDPOINTS" default:"127.0.0.1:2379"`
		Prefix    string `long:"prefix" description:"key prefix for node registrations" env:"PREFIX" default:"/jobmesh/nodes"`
		LeaseTTL  int64  `long:"lease-ttl" description:"registration lease ttl (s)" env:"LEASE_TTL" default:"10"`
	} `group:"etcd" namespace:"etcd" env-namespace:"ETCD"`

	Queue struct {
		Backend string `long:"backend" description:"job queue backend" env:"BACKEND" default:"postgres"`
		DSN     string `long:"dsn" description:"job queue connection string" env:"DSN"`
		Timeout int    `long:"requeue-timeout" description:"timeout for requeueing jobs of a failed worker (ms)" env:"REQUEUE_TIMEOUT" default:"10000"`
	} `group:"queue" namespace:"queue" env-namespace:"QUEUE"`

	Kafka struct {
		Brokers string `long:"brokers" description:"comma-separated list of brokers to publish node events to" env:"BROKERS"`
		Topic   string `long:"topic" description:"topic for node events" env:"TOPIC" default:"jobmesh.membership"`
	} `group:"kafka" namespace:"kafka" env-namespace:"KAFKA"`

	API struct {
		Enabled  bool   `long:"enabled" description:"enable HTTP API" env:"ENABLED"`
		BindAddr string `long:"bind-addr" description:"address to bind HTTP API" env:"BIND_ADDR" default:":8080"`
	} `group:"api" namespace:"api" env-namespace:"API"`

	Verbose bool `long:"verbose" description:"verbose mode" env:"VERBOSE"`
}

func parseAddrs(addrs string) []string {
	sl := strings.Split(addrs, ",")
	res := make([]string, 0, len(sl))

	for _, addr := range sl {
		trimmed := strings.TrimSpace(addr)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}

	return res
}
