package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fynchlabs/toast-insights/internal/infrastructure/webhook"
	"github.com/fynchlabs/toast-insights/pkg/apperror"
)

// TaskStatus is the lifecycle state of a queued report job.
type TaskStatus string

const (
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// deliveryTimeout bounds outcome delivery, separately from the job itself.
const deliveryTimeout = time.Minute

// Task is one queued report job. Result holds the report payload once the
// job completes.
type Task struct {
	ID          string     `json:"taskId"`
	Type        string     `json:"type"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Result      any        `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// TaskFunc is the work a task runs, returning the payload to deliver.
type TaskFunc func(ctx context.Context) (any, error)

// TaskService runs report jobs in the background and tracks their state in
// memory. State does not survive a restart; callers that need the result
// durably receive it by webhook.
type TaskService struct {
	notifier *webhook.Notifier
	errors   *webhook.ErrorReporter
	timeout  time.Duration
	log      logrus.FieldLogger

	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewTaskService creates a new task service. Each job is bounded by the
// given execution timeout.
func NewTaskService(notifier *webhook.Notifier, errors *webhook.ErrorReporter, timeout time.Duration, log logrus.FieldLogger) *TaskService {
	return &TaskService{
		notifier: notifier,
		errors:   errors,
		timeout:  timeout,
		log:      log,
		tasks:    make(map[string]*Task),
	}
}

// Submit queues a job and returns immediately with its task record. The job
// runs in its own goroutine; when a webhook URL is given, the outcome is
// posted there on completion.
func (s *TaskService) Submit(taskType, webhookURL string, run TaskFunc) *Task {
	task := &Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Status:    TaskStatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.tasks[task.ID] = task
	queued := s.snapshot(task)
	s.mu.Unlock()

	go s.execute(task.ID, taskType, webhookURL, run)
	return queued
}

// Get returns the current state of a task.
func (s *TaskService) Get(id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, apperror.ErrTaskNotFound
	}
	return s.snapshot(task), nil
}

func (s *TaskService) execute(id, taskType, webhookURL string, run TaskFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	log := s.log.WithFields(logrus.Fields{"task": id, "type": taskType})
	log.Info("task started")

	result, err := run(ctx)
	now := time.Now().UTC()

	s.mu.Lock()
	task := s.tasks[id]
	task.CompletedAt = &now
	if err != nil {
		task.Status = TaskStatusFailed
		task.Error = err.Error()
	} else {
		task.Status = TaskStatusCompleted
		task.Result = result
	}
	done := s.snapshot(task)
	s.mu.Unlock()

	// The job context is often already expired here when the job failed by
	// timeout; deliveries run on their own context so the outcome still
	// reaches the caller.
	deliveryCtx, cancelDelivery := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancelDelivery()

	if err != nil {
		log.Errorf("task failed: %v", err)
		s.errors.Report(deliveryCtx, err.Error(), map[string]any{
			"taskId": id,
			"type":   taskType,
		})
	} else {
		log.Info("task completed")
	}

	if webhookURL == "" {
		return
	}
	if err := s.notifier.Post(deliveryCtx, webhookURL, done); err != nil {
		log.Warnf("result webhook delivery failed: %v", err)
	}
}

// snapshot copies a task so callers never see fields mid-update.
func (s *TaskService) snapshot(t *Task) *Task {
	copied := *t
	return &copied
}
