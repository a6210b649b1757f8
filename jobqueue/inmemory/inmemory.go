package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/maxpoletaev/jobmesh/internal/heap"
	"github.com/maxpoletaev/jobmesh/jobqueue"
)

// BackendName is the key the in-memory queue is registered with.
const BackendName = "inmemory"

func init() {
	jobqueue.Register(BackendName, jobqueue.FactoryFunc(func(context.Context, jobqueue.Config) (jobqueue.Queue, error) {
		return New(), nil
	}))
}

// item is a stored job. The sequence number is assigned once, when the job is
// added, and orders jobs created at the same time.
type item struct {
	job jobqueue.Job
	seq uint64
}

func higherPriority(a, b *item) bool {
	if a.job.Priority != b.job.Priority {
		return a.job.Priority > b.job.Priority
	}

	if !a.job.CreatedAt.Equal(b.job.CreatedAt) {
		return a.job.CreatedAt.Before(b.job.CreatedAt)
	}

	return a.seq < b.seq
}

type group struct {
	jobs    map[string]*item
	pending *heap.Heap[*item]
}

// Queue keeps the jobs in process memory. Removed and taken jobs are not deleted
// from the pending heap right away, they are skipped when popped instead.
type Queue struct {
	mut    sync.Mutex
	seq    uint64
	groups map[string]*group
	now    func() time.Time
}

var _ jobqueue.Queue = (*Queue)(nil)

func New() *Queue {
	return &Queue{
		groups: make(map[string]*group),
		now:    time.Now,
	}
}

func (q *Queue) group(name string) *group {
	g, ok := q.groups[name]
	if !ok {
		g = &group{
			jobs:    make(map[string]*item),
			pending: heap.New(higherPriority),
		}
		q.groups[name] = g
	}

	return g
}

func (q *Queue) Add(_ context.Context, job jobqueue.Job) error {
	q.mut.Lock()
	defer q.mut.Unlock()

	g := q.group(job.Group)
	if _, ok := g.jobs[job.ID]; ok {
		return jobqueue.ErrJobExists
	}

	now := q.now()
	job.Status = jobqueue.StatusPending
	job.WorkerID = ""
	job.UpdatedAt = now

	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}

	q.seq++
	it := &item{job: job, seq: q.seq}
	g.jobs[job.ID] = it
	g.pending.Push(it)

	return nil
}

func (q *Queue) Get(_ context.Context, groupName, id string) (jobqueue.Job, error) {
	q.mut.Lock()
	defer q.mut.Unlock()

	it, ok := q.group(groupName).jobs[id]
	if !ok {
		return jobqueue.Job{}, jobqueue.ErrJobNotFound
	}

	return it.job, nil
}

func (q *Queue) Remove(_ context.Context, groupName, id string) error {
	q.mut.Lock()
	defer q.mut.Unlock()

	g := q.group(groupName)
	if _, ok := g.jobs[id]; !ok {
		return jobqueue.ErrJobNotFound
	}

	delete(g.jobs, id)

	return nil
}

func (q *Queue) Take(_ context.Context, groupName, workerID string) (jobqueue.Job, error) {
	q.mut.Lock()
	defer q.mut.Unlock()

	g := q.group(groupName)

	for {
		it, ok := g.pending.Pop()
		if !ok {
			return jobqueue.Job{}, jobqueue.ErrJobNotFound
		}

		// Skip entries of removed or already taken jobs.
		if g.jobs[it.job.ID] != it || it.job.Status != jobqueue.StatusPending {
			continue
		}

		it.job.Status = jobqueue.StatusRunning
		it.job.WorkerID = workerID
		it.job.UpdatedAt = q.now()

		return it.job, nil
	}
}

// Requeue puts the running jobs of the worker back to pending. They keep their
// original place in the queue.
func (q *Queue) Requeue(_ context.Context, groupName, workerID string) (int, error) {
	q.mut.Lock()
	defer q.mut.Unlock()

	g := q.group(groupName)
	count := 0

	for _, it := range g.jobs {
		if it.job.Status != jobqueue.StatusRunning || it.job.WorkerID != workerID {
			continue
		}

		it.job.Status = jobqueue.StatusPending
		it.job.WorkerID = ""
		it.job.UpdatedAt = q.now()
		g.pending.Push(it)
		count++
	}

	return count, nil
}

func (q *Queue) Close() error {
	return nil
}
