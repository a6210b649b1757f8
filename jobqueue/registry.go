package jobqueue

import (
	"context"
	"fmt"
	"sort"
	"sync"

	kitlog "github.com/go-kit/log"
)

// DefaultBackend is used when Config.Backend is empty.
const DefaultBackend = "postgres"

type Config struct {
	// Backend is the key the queue implementation has been registered with.
	Backend string
	// DSN is the backend specific connection string.
	DSN    string
	Logger kitlog.Logger
}

// Factory creates queues of one backend.
type Factory interface {
	Open(ctx context.Context, conf Config) (Queue, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(ctx context.Context, conf Config) (Queue, error)

func (f FactoryFunc) Open(ctx context.Context, conf Config) (Queue, error) {
	return f(ctx, conf)
}

var (
	factoriesMut sync.RWMutex
	factories    = make(map[string]Factory)
)

// Register makes a queue backend available by the key. It is meant to be called
// from the init function of the backend package and panics if the key is taken.
func Register(key string, factory Factory) {
	factoriesMut.Lock()
	defer factoriesMut.Unlock()

	if factory == nil {
		panic("jobqueue: register factory is nil")
	}

	if _, dup := factories[key]; dup {
		panic("jobqueue: register called twice for backend " + key)
	}

	factories[key] = factory
}

// Backends returns the sorted keys of the registered backends.
func Backends() []string {
	factoriesMut.RLock()
	defer factoriesMut.RUnlock()

	keys := make([]string, 0, len(factories))
	for key := range factories {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Open creates a queue using the backend selected by conf.Backend.
func Open(ctx context.Context, conf Config) (Queue, error) {
	key := conf.Backend
	if key == "" {
		key = DefaultBackend
	}

	if conf.Logger == nil {
		conf.Logger = kitlog.NewNopLogger()
	}

	factoriesMut.RLock()
	factory, ok := factories[key]
	factoriesMut.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, key)
	}

	queue, err := factory.Open(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("open %s queue: %w", key, err)
	}

	return queue, nil
}
