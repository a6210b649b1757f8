package postgres

import (
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/maxpoletaev/jobmesh/jobqueue"
)

const jobsTable = "executable_jobs"

const schema = `
create table if not exists executable_jobs (
	job_id     text        not null,
	node_group text        not null,
	priority   integer     not null default 0,
	payload    bytea,
	status     smallint    not null,
	worker_id  text        not null default '',
	created_at timestamptz not null,
	updated_at timestamptz not null,
	primary key (node_group, job_id)
);
create index if not exists executable_jobs_pending_idx
	on executable_jobs (node_group, status, priority desc, created_at);
`

var jobColumns = []string{
	"job_id",
	"node_group",
	"priority",
	"payload",
	"status",
	"worker_id",
	"created_at",
	"updated_at",
}

// takeQuery marks the next pending job as running. Rows locked by concurrent
// takers are skipped, so two workers never get the same job.
const takeQuery = `
update executable_jobs
set status = $1, worker_id = $2, updated_at = $3
where node_group = $4 and job_id = (
	select job_id from executable_jobs
	where node_group = $4 and status = $5
	order by priority desc, created_at asc
	limit 1
	for update skip locked
)
returning job_id, node_group, priority, payload, status, worker_id, created_at, updated_at
`

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func insertJobQuery(job jobqueue.Job) (string, []interface{}, error) {
	return psql().Insert(jobsTable).
		Columns(jobColumns...).
		Values(
			job.ID,
			job.Group,
			job.Priority,
			job.Payload,
			int16(job.Status),
			job.WorkerID,
			job.CreatedAt,
			job.UpdatedAt,
		).
		ToSql()
}

func selectJobQuery(group, id string) (string, []interface{}, error) {
	return psql().Select(jobColumns...).
		From(jobsTable).
		Where(squirrel.Eq{"node_group": group, "job_id": id}).
		ToSql()
}

func deleteJobQuery(group, id string) (string, []interface{}, error) {
	return psql().Delete(jobsTable).
		Where(squirrel.Eq{"node_group": group, "job_id": id}).
		ToSql()
}

func requeueQuery(group, workerID string, now time.Time) (string, []interface{}, error) {
	return psql().Update(jobsTable).
		Set("status", int16(jobqueue.StatusPending)).
		Set("worker_id", "").
		Set("updated_at", now).
		Where(squirrel.Eq{
			"node_group": group,
			"worker_id":  workerID,
			"status":     int16(jobqueue.StatusRunning),
		}).
		ToSql()
}
