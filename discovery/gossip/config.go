package gossip

import (
	"time"

	kitlog "github.com/go-kit/log"

	"github.com/maxpoletaev/jobmesh/membership"
)

type Config struct {
	Self          membership.Node
	BindAddr      string
	BindPort      int
	AdvertiseAddr string
	AdvertisePort int
	Seeds         []string
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	JoinAttempts  uint
	JoinDelay     time.Duration
	Logger        kitlog.Logger
}

func DefaultConfig() Config {
	return Config{
		BindAddr:      "0.0.0.0",
		BindPort:      7946,
		ProbeInterval: 1 * time.Second,
		ProbeTimeout:  500 * time.Millisecond,
		JoinAttempts:  10,
		JoinDelay:     1 * time.Second,
		Logger:        kitlog.NewNopLogger(),
	}
}
