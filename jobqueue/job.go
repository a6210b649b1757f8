package jobqueue

import (
	"context"
	"errors"
	"time"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrJobExists      = errors.New("job already exists")
	ErrUnknownBackend = errors.New("unknown job queue backend")
)

type Status uint8

const (
	// StatusPending is the status of a job waiting for a worker.
	StatusPending Status = iota + 1

	// StatusRunning is the status of a job taken by a worker.
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	default:
		return ""
	}
}

// Job is a unit of work executed by a worker of the same group.
type Job struct {
	ID        string
	Group     string
	Priority  int
	Payload   []byte
	Status    Status
	WorkerID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Queue stores executable jobs, partitioned by group. Jobs with a higher priority
// are taken first, jobs with the same priority are taken in creation order.
type Queue interface {
	// Add stores a new pending job. ErrJobExists is returned if the group already
	// has a job with the same ID.
	Add(ctx context.Context, job Job) error
	Get(ctx context.Context, group, id string) (Job, error)
	Remove(ctx context.Context, group, id string) error
	// Take marks the next pending job of the group as running by the worker.
	// ErrJobNotFound is returned when there are no pending jobs.
	Take(ctx context.Context, group, workerID string) (Job, error)
	// Requeue returns all running jobs of the worker back to pending.
	Requeue(ctx context.Context, group, workerID string) (int, error)
	Close() error
}
