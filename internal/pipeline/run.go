// Package pipeline tracks content-generation runs. The generation pipeline
// itself runs elsewhere; it reports step transitions here and dashboards
// read run state or subscribe to the event stream.
package pipeline

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a step or run.
type Status string

// Step and run statuses. Done and Failed are terminal.
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Valid reports whether s is a declared status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusDone, StatusFailed:
		return true
	default:
		return false
	}
}

func (s Status) terminal() bool { return s == StatusDone || s == StatusFailed }

// Step is one unit of pipeline work, supplied entirely by the pipeline.
type Step struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Status   Status `json:"status"`
	Progress int    `json:"progress,omitempty"` // 0-100, meaningful while running
}

// Run is one tracked pipeline execution for a brief.
type Run struct {
	ID        string    `json:"id"`
	BriefID   string    `json:"brief_id"`
	Status    Status    `json:"status"`
	Steps     []Step    `json:"steps"`
	Progress  int       `json:"progress"` // overall 0-100
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tracker errors.
var (
	ErrRunNotFound   = errors.New("run not found")
	ErrStepNotFound  = errors.New("step not found")
	ErrStepTerminal  = errors.New("step already in a terminal state")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNoSteps       = errors.New("run needs at least one step")
	ErrBadTransition = errors.New("invalid status transition")
)

// Tracker holds run state in memory. All methods are safe for concurrent use.
type Tracker struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewTracker creates an empty run tracker.
func NewTracker() *Tracker {
	return &Tracker{runs: make(map[string]*Run)}
}

// StartRun registers a new run with the given step labels, all pending.
func (t *Tracker) StartRun(briefID string, stepLabels []string) (*Run, error) {
	if len(stepLabels) == 0 {
		return nil, ErrNoSteps
	}

	now := time.Now().UTC()
	run := &Run{
		ID:        uuid.New().String(),
		BriefID:   briefID,
		Status:    StatusPending,
		Steps:     make([]Step, len(stepLabels)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, label := range stepLabels {
		run.Steps[i] = Step{
			ID:     fmt.Sprintf("step-%d", i+1),
			Label:  label,
			Status: StatusPending,
		}
	}

	t.mu.Lock()
	t.runs[run.ID] = run
	t.mu.Unlock()

	return snapshot(run), nil
}

// Get returns a copy of the run.
func (t *Tracker) Get(runID string) (*Run, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	run, ok := t.runs[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	return snapshot(run), nil
}

// UpdateStep applies a status report from the pipeline to one step and
// recomputes run status and progress. Progress is clamped to 0-100.
func (t *Tracker) UpdateStep(runID, stepID string, status Status, progress int) (*Run, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	run, ok := t.runs[runID]
	if !ok {
		return nil, ErrRunNotFound
	}

	step := findStep(run, stepID)
	if step == nil {
		return nil, fmt.Errorf("%w: %s", ErrStepNotFound, stepID)
	}
	if step.Status.terminal() {
		return nil, fmt.Errorf("%w: %s is %s", ErrStepTerminal, stepID, step.Status)
	}
	if step.Status == StatusPending && status.terminal() && status != StatusFailed {
		// A step may fail before it starts, but it cannot finish unstarted.
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, step.Status, status)
	}

	step.Status = status
	step.Progress = clampProgress(status, progress)

	recompute(run)
	run.UpdatedAt = time.Now().UTC()

	return snapshot(run), nil
}

func findStep(run *Run, stepID string) *Step {
	for i := range run.Steps {
		if run.Steps[i].ID == stepID {
			return &run.Steps[i]
		}
	}
	return nil
}

func clampProgress(status Status, progress int) int {
	if status == StatusDone {
		return 100
	}
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// recompute derives run status and overall progress from the steps. Progress
// always averages every step, failed runs included.
func recompute(run *Run) {
	allDone := true
	anyStarted := false
	anyFailed := false
	total := 0

	for _, step := range run.Steps {
		total += step.Progress
		switch step.Status {
		case StatusFailed:
			anyFailed = true
			allDone = false
		case StatusDone:
			anyStarted = true
		case StatusRunning:
			anyStarted = true
			allDone = false
		default:
			allDone = false
		}
	}

	run.Progress = total / len(run.Steps)
	switch {
	case anyFailed:
		run.Status = StatusFailed
	case allDone:
		run.Status = StatusDone
	case anyStarted:
		run.Status = StatusRunning
	default:
		run.Status = StatusPending
	}
}

func snapshot(run *Run) *Run {
	cp := *run
	cp.Steps = make([]Step, len(run.Steps))
	copy(cp.Steps, run.Steps)
	return &cp
}
