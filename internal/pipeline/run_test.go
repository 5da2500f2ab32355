package pipeline

import (
	"errors"
	"testing"
)

func newTestRun(t *testing.T) (*Tracker, *Run) {
	t.Helper()
	tracker := NewTracker()
	run, err := tracker.StartRun("brief-1", []string{"script", "render", "publish"})
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	return tracker, run
}

func TestStartRun(t *testing.T) {
	_, run := newTestRun(t)

	if run.Status != StatusPending {
		t.Errorf("new run status = %s, want pending", run.Status)
	}
	if len(run.Steps) != 3 {
		t.Fatalf("new run has %d steps, want 3", len(run.Steps))
	}
	for _, step := range run.Steps {
		if step.Status != StatusPending {
			t.Errorf("step %s status = %s, want pending", step.ID, step.Status)
		}
	}
}

func TestStartRun_NoSteps(t *testing.T) {
	tracker := NewTracker()
	if _, err := tracker.StartRun("brief-1", nil); !errors.Is(err, ErrNoSteps) {
		t.Errorf("StartRun(no steps) = %v, want ErrNoSteps", err)
	}
}

func TestUpdateStep_Progress(t *testing.T) {
	tracker, run := newTestRun(t)

	updated, err := tracker.UpdateStep(run.ID, "step-1", StatusRunning, 50)
	if err != nil {
		t.Fatalf("UpdateStep: %v", err)
	}
	if updated.Status != StatusRunning {
		t.Errorf("run status = %s, want running", updated.Status)
	}
	if updated.Progress != 16 { // 50/3
		t.Errorf("run progress = %d, want 16", updated.Progress)
	}
}

func TestUpdateStep_RunCompletes(t *testing.T) {
	tracker, run := newTestRun(t)

	for _, stepID := range []string{"step-1", "step-2", "step-3"} {
		if _, err := tracker.UpdateStep(run.ID, stepID, StatusRunning, 0); err != nil {
			t.Fatalf("UpdateStep(%s, running): %v", stepID, err)
		}
		if _, err := tracker.UpdateStep(run.ID, stepID, StatusDone, 0); err != nil {
			t.Fatalf("UpdateStep(%s, done): %v", stepID, err)
		}
	}

	final, err := tracker.Get(run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if final.Status != StatusDone {
		t.Errorf("run status = %s, want done", final.Status)
	}
	if final.Progress != 100 {
		t.Errorf("run progress = %d, want 100", final.Progress)
	}
}

func TestUpdateStep_FailureIsTerminalForRun(t *testing.T) {
	tracker, run := newTestRun(t)

	if _, err := tracker.UpdateStep(run.ID, "step-1", StatusRunning, 10); err != nil {
		t.Fatalf("UpdateStep: %v", err)
	}
	updated, err := tracker.UpdateStep(run.ID, "step-1", StatusFailed, 10)
	if err != nil {
		t.Fatalf("UpdateStep(failed): %v", err)
	}
	if updated.Status != StatusFailed {
		t.Errorf("run status = %s, want failed", updated.Status)
	}

	// Terminal steps reject further updates.
	if _, err := tracker.UpdateStep(run.ID, "step-1", StatusRunning, 0); !errors.Is(err, ErrStepTerminal) {
		t.Errorf("update of terminal step = %v, want ErrStepTerminal", err)
	}
}

func TestUpdateStep_FailedRunKeepsCompletedProgress(t *testing.T) {
	tracker := NewTracker()
	run, err := tracker.StartRun("brief-1", []string{"script", "render"})
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	// Finish step-2 first, then fail step-1: the done step's progress must
	// still count toward the failed run's overall progress.
	if _, err := tracker.UpdateStep(run.ID, "step-2", StatusRunning, 0); err != nil {
		t.Fatalf("UpdateStep(step-2, running): %v", err)
	}
	if _, err := tracker.UpdateStep(run.ID, "step-2", StatusDone, 0); err != nil {
		t.Fatalf("UpdateStep(step-2, done): %v", err)
	}

	updated, err := tracker.UpdateStep(run.ID, "step-1", StatusFailed, 0)
	if err != nil {
		t.Fatalf("UpdateStep(step-1, failed): %v", err)
	}
	if updated.Status != StatusFailed {
		t.Errorf("run status = %s, want failed", updated.Status)
	}
	if updated.Progress != 50 { // (0 + 100) / 2
		t.Errorf("run progress = %d, want 50", updated.Progress)
	}
}

func TestUpdateStep_PendingCannotComplete(t *testing.T) {
	tracker, run := newTestRun(t)

	if _, err := tracker.UpdateStep(run.ID, "step-2", StatusDone, 0); !errors.Is(err, ErrBadTransition) {
		t.Errorf("pending->done = %v, want ErrBadTransition", err)
	}
	// But a pending step may fail outright.
	if _, err := tracker.UpdateStep(run.ID, "step-2", StatusFailed, 0); err != nil {
		t.Errorf("pending->failed = %v, want nil", err)
	}
}

func TestUpdateStep_ClampsProgress(t *testing.T) {
	tracker, run := newTestRun(t)

	updated, err := tracker.UpdateStep(run.ID, "step-1", StatusRunning, 150)
	if err != nil {
		t.Fatalf("UpdateStep: %v", err)
	}
	if updated.Steps[0].Progress != 100 {
		t.Errorf("step progress = %d, want clamped 100", updated.Steps[0].Progress)
	}
}

func TestUpdateStep_UnknownRunAndStep(t *testing.T) {
	tracker, run := newTestRun(t)

	if _, err := tracker.UpdateStep("missing", "step-1", StatusRunning, 0); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("unknown run = %v, want ErrRunNotFound", err)
	}
	if _, err := tracker.UpdateStep(run.ID, "step-9", StatusRunning, 0); !errors.Is(err, ErrStepNotFound) {
		t.Errorf("unknown step = %v, want ErrStepNotFound", err)
	}
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	tracker, run := newTestRun(t)

	copy1, err := tracker.Get(run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	copy1.Steps[0].Status = StatusFailed

	copy2, err := tracker.Get(run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if copy2.Steps[0].Status != StatusPending {
		t.Error("Get returned shared state; mutation leaked into tracker")
	}
}
