package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maxpoletaev/jobmesh/jobqueue"
)

func TestQueue_Registered(t *testing.T) {
	q, err := jobqueue.Open(context.Background(), jobqueue.Config{Backend: BackendName})
	require.NoError(t, err)
	require.IsType(t, &Queue{}, q)
}

func TestQueue_AddGetRemove(t *testing.T) {
	ctx := context.Background()
	q := New()

	require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "j1", Group: "g1", Payload: []byte("x")}))
	require.ErrorIs(t, q.Add(ctx, jobqueue.Job{ID: "j1", Group: "g1"}), jobqueue.ErrJobExists)

	// Same ID in another group is a different job.
	require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "j1", Group: "g2"}))

	job, err := q.Get(ctx, "g1", "j1")
	require.NoError(t, err)
	require.Equal(t, jobqueue.StatusPending, job.Status)
	require.Equal(t, []byte("x"), job.Payload)
	require.False(t, job.CreatedAt.IsZero())

	require.NoError(t, q.Remove(ctx, "g1", "j1"))
	require.ErrorIs(t, q.Remove(ctx, "g1", "j1"), jobqueue.ErrJobNotFound)

	_, err = q.Get(ctx, "g1", "j1")
	require.ErrorIs(t, err, jobqueue.ErrJobNotFound)

	// A removed job must not be taken.
	_, err = q.Take(ctx, "g1", "w1")
	require.ErrorIs(t, err, jobqueue.ErrJobNotFound)
}

func TestQueue_TakeOrder(t *testing.T) {
	ctx := context.Background()
	q := New()

	require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "low", Group: "g1", Priority: 1}))
	require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "high-1", Group: "g1", Priority: 5}))
	require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "high-2", Group: "g1", Priority: 5}))
	require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "other", Group: "g2", Priority: 9}))

	var taken []string

	for {
		job, err := q.Take(ctx, "g1", "w1")
		if err != nil {
			require.ErrorIs(t, err, jobqueue.ErrJobNotFound)
			break
		}

		require.Equal(t, jobqueue.StatusRunning, job.Status)
		require.Equal(t, "w1", job.WorkerID)
		taken = append(taken, job.ID)
	}

	require.Equal(t, []string{"high-1", "high-2", "low"}, taken)
}

func TestQueue_Requeue(t *testing.T) {
	ctx := context.Background()
	q := New()

	require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "j1", Group: "g1"}))
	require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "j2", Group: "g1"}))
	require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "j3", Group: "g1"}))

	_, err := q.Take(ctx, "g1", "w1")
	require.NoError(t, err)
	_, err = q.Take(ctx, "g1", "w1")
	require.NoError(t, err)
	_, err = q.Take(ctx, "g1", "w2")
	require.NoError(t, err)

	n, err := q.Requeue(ctx, "g1", "w1")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = q.Requeue(ctx, "g1", "w1")
	require.NoError(t, err)
	require.Equal(t, 0, n)

	j3, err := q.Get(ctx, "g1", "j3")
	require.NoError(t, err)
	require.Equal(t, jobqueue.StatusRunning, j3.Status)
	require.Equal(t, "w2", j3.WorkerID)

	// Both requeued jobs can be taken again, and only once.
	ids := make(map[string]bool)

	for i := 0; i < 2; i++ {
		job, err := q.Take(ctx, "g1", "w3")
		require.NoError(t, err)
		ids[job.ID] = true
	}

	require.Equal(t, map[string]bool{"j1": true, "j2": true}, ids)

	_, err = q.Take(ctx, "g1", "w3")
	require.ErrorIs(t, err, jobqueue.ErrJobNotFound)
}

func TestQueue_RequeueKeepsCreationOrder(t *testing.T) {
	tests := map[string]struct {
		now func() time.Time
	}{
		"RealClock": {
			now: time.Now,
		},
		"SameTimestamp": {
			now: func() time.Time {
				return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			q := New()
			q.now = tt.now

			for _, id := range []string{"j1", "j2", "j3"} {
				require.NoError(t, q.Add(ctx, jobqueue.Job{ID: id, Group: "g1"}))

				_, err := q.Take(ctx, "g1", "w1")
				require.NoError(t, err)
			}

			require.NoError(t, q.Add(ctx, jobqueue.Job{ID: "j4", Group: "g1"}))

			n, err := q.Requeue(ctx, "g1", "w1")
			require.NoError(t, err)
			require.Equal(t, 3, n)

			var taken []string

			for i := 0; i < 4; i++ {
				job, err := q.Take(ctx, "g1", "w2")
				require.NoError(t, err)
				taken = append(taken, job.ID)
			}

			require.Equal(t, []string{"j1", "j2", "j3", "j4"}, taken)
		})
	}
}
