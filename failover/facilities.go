package failover

//go:generate mockgen -source=facilities.go -destination=facilities_mock_test.go -package=failover

import "context"

// Requeuer puts the jobs taken by a worker back to pending.
type Requeuer interface {
	Requeue(ctx context.Context, group, workerID string) (int, error)
}
