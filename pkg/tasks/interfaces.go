package tasks

import "github.com/hibiken/asynq"

// TaskEnqueuer is the slice of asynq.Client the handlers need, kept as an
// interface so tests can swap in a recorder.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
