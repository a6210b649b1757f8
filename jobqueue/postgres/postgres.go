package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxpoletaev/jobmesh/jobqueue"
)

// BackendName is the key the PostgreSQL queue is registered with.
const BackendName = "postgres"

const uniqueViolation = "23505"

func init() {
	jobqueue.Register(BackendName, jobqueue.FactoryFunc(func(ctx context.Context, conf jobqueue.Config) (jobqueue.Queue, error) {
		return Open(ctx, conf.DSN, conf.Logger)
	}))
}

type row interface {
	Scan(dest ...interface{}) error
}

// Queue stores jobs in the executable_jobs table.
type Queue struct {
	db     *pgxpool.Pool
	logger kitlog.Logger
	now    func() time.Time
}

var _ jobqueue.Queue = (*Queue)(nil)

// Open connects to the database and makes sure the jobs table exists.
func Open(ctx context.Context, dsn string, logger kitlog.Logger) (*Queue, error) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if _, err = pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	level.Info(logger).Log("msg", "job queue connected", "host", cfg.ConnConfig.Host, "database", cfg.ConnConfig.Database)

	return &Queue{
		db:     pool,
		logger: logger,
		now:    time.Now,
	}, nil
}

func scanJob(r row) (jobqueue.Job, error) {
	var (
		job    jobqueue.Job
		status int16
	)

	err := r.Scan(
		&job.ID,
		&job.Group,
		&job.Priority,
		&job.Payload,
		&status,
		&job.WorkerID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobqueue.Job{}, jobqueue.ErrJobNotFound
		}

		return jobqueue.Job{}, err
	}

	job.Status = jobqueue.Status(status)

	return job, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (q *Queue) Add(ctx context.Context, job jobqueue.Job) error {
	now := q.now()
	job.Status = jobqueue.StatusPending
	job.WorkerID = ""
	job.UpdatedAt = now

	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}

	sql, args, err := insertJobQuery(job)
	if err != nil {
		return fmt.Errorf("failed to create db request: %w", err)
	}

	if _, err = q.db.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return jobqueue.ErrJobExists
		}

		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

func (q *Queue) Get(ctx context.Context, group, id string) (jobqueue.Job, error) {
	sql, args, err := selectJobQuery(group, id)
	if err != nil {
		return jobqueue.Job{}, fmt.Errorf("failed to create db request: %w", err)
	}

	job, err := scanJob(q.db.QueryRow(ctx, sql, args...))
	if err != nil && !errors.Is(err, jobqueue.ErrJobNotFound) {
		return jobqueue.Job{}, fmt.Errorf("failed to get job: %w", err)
	}

	return job, err
}

func (q *Queue) Remove(ctx context.Context, group, id string) error {
	sql, args, err := deleteJobQuery(group, id)
	if err != nil {
		return fmt.Errorf("failed to create db request: %w", err)
	}

	tag, err := q.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return jobqueue.ErrJobNotFound
	}

	return nil
}

func (q *Queue) Take(ctx context.Context, group, workerID string) (jobqueue.Job, error) {
	r := q.db.QueryRow(ctx, takeQuery,
		int16(jobqueue.StatusRunning),
		workerID,
		q.now(),
		group,
		int16(jobqueue.StatusPending),
	)

	job, err := scanJob(r)
	if err != nil && !errors.Is(err, jobqueue.ErrJobNotFound) {
		return jobqueue.Job{}, fmt.Errorf("failed to take job: %w", err)
	}

	return job, err
}

func (q *Queue) Requeue(ctx context.Context, group, workerID string) (int, error) {
	sql, args, err := requeueQuery(group, workerID, q.now())
	if err != nil {
		return 0, fmt.Errorf("failed to create db request: %w", err)
	}

	tag, err := q.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue jobs: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (q *Queue) Close() error {
	q.db.Close()
	return nil
}
