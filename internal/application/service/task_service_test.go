package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fynchlabs/toast-insights/internal/infrastructure/webhook"
	"github.com/fynchlabs/toast-insights/pkg/apperror"
)

func newTaskService(t *testing.T) *TaskService {
	t.Helper()
	notifier := webhook.NewNotifier(2*time.Second, testLogger())
	reporter := webhook.NewErrorReporter(notifier, "", testLogger())
	return NewTaskService(notifier, reporter, 5*time.Second, testLogger())
}

// waitForTask polls until the task leaves the processing state.
func waitForTask(t *testing.T, svc *TaskService, id string) *Task {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		task, err := svc.Get(id)
		if err != nil {
			t.Fatalf("Get(%s): %v", id, err)
		}
		if task.Status != TaskStatusProcessing {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("task %s never completed", id)
	return nil
}

func TestTaskLifecycle(t *testing.T) {
	svc := newTaskService(t)

	queued := svc.Submit("tips", "", func(ctx context.Context) (any, error) {
		return map[string]int{"answer": 42}, nil
	})
	if queued.Status != TaskStatusProcessing {
		t.Errorf("initial status = %q, want processing", queued.Status)
	}
	if queued.ID == "" {
		t.Fatal("task has no id")
	}

	done := waitForTask(t, svc, queued.ID)
	if done.Status != TaskStatusCompleted {
		t.Fatalf("status = %q, want completed", done.Status)
	}
	if done.CompletedAt == nil {
		t.Error("completedAt not set")
	}
	result, ok := done.Result.(map[string]int)
	if !ok || result["answer"] != 42 {
		t.Errorf("result = %v", done.Result)
	}
}

func TestTaskFailure(t *testing.T) {
	svc := newTaskService(t)

	queued := svc.Submit("tips", "", func(ctx context.Context) (any, error) {
		return nil, errors.New("upstream exploded")
	})

	done := waitForTask(t, svc, queued.ID)
	if done.Status != TaskStatusFailed {
		t.Fatalf("status = %q, want failed", done.Status)
	}
	if done.Error != "upstream exploded" {
		t.Errorf("error = %q", done.Error)
	}
}

func TestTaskNotFound(t *testing.T) {
	svc := newTaskService(t)
	_, err := svc.Get("no-such-task")
	if !errors.Is(err, apperror.ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskTimeoutStillDeliversWebhook(t *testing.T) {
	received := make(chan Task, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var task Task
		if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
			t.Errorf("decoding webhook body: %v", err)
		}
		received <- task
	}))
	defer hook.Close()

	notifier := webhook.NewNotifier(2*time.Second, testLogger())
	reporter := webhook.NewErrorReporter(notifier, "", testLogger())
	svc := NewTaskService(notifier, reporter, 50*time.Millisecond, testLogger())

	// The job runs until its context expires, so the failure outcome is
	// delivered after the job's own deadline has passed.
	queued := svc.Submit("tips", hook.URL, func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	select {
	case task := <-received:
		if task.ID != queued.ID || task.Status != TaskStatusFailed {
			t.Errorf("webhook task = %+v, want failed status", task)
		}
		if task.Error == "" {
			t.Error("webhook task carries no error")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("failure webhook never delivered")
	}
}

func TestTaskPostsResultWebhook(t *testing.T) {
	received := make(chan Task, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var task Task
		if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
			t.Errorf("decoding webhook body: %v", err)
		}
		received <- task
	}))
	defer hook.Close()

	svc := newTaskService(t)
	queued := svc.Submit("orders", hook.URL, func(ctx context.Context) (any, error) {
		return "payload", nil
	})

	select {
	case task := <-received:
		if task.ID != queued.ID || task.Status != TaskStatusCompleted {
			t.Errorf("webhook task = %+v", task)
		}
		if task.Result != "payload" {
			t.Errorf("webhook result = %v", task.Result)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("webhook never delivered")
	}
}
