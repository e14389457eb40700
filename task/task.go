// Package task provides the task dispatch system.
//
// Information Hiding:
// - Handler execution details hidden behind interface
// - Per-handler parameter parsing and URL building internalized
// - Error handling internalized per handler: a handler fault becomes a
//   failure Result, never an error escaping to the caller
package task

import (
	"context"
	"fmt"
)

// Result represents the outcome of a task execution. It is terminal
// output for the caller; failures carry the cause in Message.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	URL      string `json:"url,omitempty"`
	TaskType string `json:"task_type"`
}

// Handler executes one task type against a raw parameter string.
type Handler interface {
	// Type returns the task-type identifier this handler serves.
	Type() string

	// Execute runs the task. Internal faults are folded into the Result;
	// Execute never panics on malformed params.
	Execute(ctx context.Context, params string) Result
}

// Actuator opens a URL externally (browser or OS-level open). The
// result URL is also returned to the caller so a frontend can open it
// itself when no local actuator exists.
type Actuator interface {
	OpenExternal(ctx context.Context, url string) error
}

// NopActuator performs no side effect; handlers still return the URL
// they would have opened. Used by the HTTP server, where the frontend
// opens result URLs.
type NopActuator struct{}

// OpenExternal does nothing.
func (NopActuator) OpenExternal(ctx context.Context, url string) error {
	return nil
}

func successResult(taskType, message, url string) Result {
	return Result{Success: true, Message: message, URL: url, TaskType: taskType}
}

func failureResult(taskType, format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...), TaskType: taskType}
}
