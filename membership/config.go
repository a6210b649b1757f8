package membership

import (
	kitlog "github.com/go-kit/log"
)

type Config struct {
	// Self is the local node. Only its Type and Group affect which nodes are tracked.
	Self      Node
	// Publisher receives the node events. Required.
	Publisher EventPublisher
	Logger    kitlog.Logger
}

func DefaultConfig() Config {
	return Config{
		Logger: kitlog.NewNopLogger(),
	}
}
