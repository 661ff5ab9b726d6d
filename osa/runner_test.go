package osa

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fbg-xyz/go-fbg/fiber"
	"github.com/fbg-xyz/go-fbg/profile"
)

func TestRunnerSingleFlight(t *testing.T) {
	r := NewRunner()

	release := make(chan struct{})
	started := make(chan struct{})
	req := Request{
		Config: DefaultConfig(),
		Mode:   profile.Mode{Strain: profile.StrainUniform, UniformStrain: 1e-4},
		Progress: func(pct int) {
			if pct == progressStart {
				close(started)
				<-release
			}
		},
	}

	id1, done1, err := r.Submit(req)
	if err != nil {
		t.Fatal(err)
	}
	if id1 == "" {
		t.Fatal("empty run ID")
	}
	<-started

	if _, _, err := r.Submit(Request{Config: DefaultConfig()}); !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("concurrent submit: got %v, want ErrRunInProgress", err)
	}

	close(release)
	outcome := <-done1
	if outcome.RunID != id1 {
		t.Errorf("outcome run ID %q, want %q", outcome.RunID, id1)
	}
	if outcome.State != StateDone || outcome.Err != nil {
		t.Fatalf("outcome state %s, err %v", outcome.State, outcome.Err)
	}
	if outcome.Output == nil || outcome.Output.Deformed == nil {
		t.Fatal("done outcome missing output")
	}
	if outcome.Elapsed <= 0 {
		t.Error("elapsed not recorded")
	}

	// The runner is free again.
	id2, done2, err := r.Submit(Request{
		Config: DefaultConfig(),
		Mode:   profile.Mode{Strain: profile.StrainNone},
	})
	if err != nil {
		t.Fatalf("resubmit after completion: %v", err)
	}
	if id2 == id1 {
		t.Error("run IDs should be unique")
	}
	if o := <-done2; o.State != StateDone {
		t.Fatalf("second run state %s, err %v", o.State, o.Err)
	}
	r.Wait()
	if s := r.State(); s != StateDone {
		t.Errorf("final state %s, want %s", s, StateDone)
	}
}

func TestRunnerFailureOutcome(t *testing.T) {
	r := NewRunner()
	_, done, err := r.Submit(Request{
		Config: DefaultConfig(),
		Mode:   profile.Mode{Strain: profile.StrainNonUniform},
	})
	if err != nil {
		t.Fatal(err)
	}
	outcome := <-done
	if outcome.State != StateFailed {
		t.Fatalf("state %s, want %s", outcome.State, StateFailed)
	}
	if !errors.Is(outcome.Err, ErrDatasetRequired) {
		t.Fatalf("got %v, want ErrDatasetRequired", outcome.Err)
	}
	if outcome.Output != nil {
		t.Error("failed outcome should carry no partial output")
	}
	r.Wait()

	// A failed run releases the gate.
	if _, done, err = r.Submit(Request{Config: DefaultConfig()}); err != nil {
		t.Fatalf("submit after failure: %v", err)
	}
	if o := <-done; o.State != StateDone {
		t.Fatalf("state %s, err %v", o.State, o.Err)
	}
}

func TestRunProgressCheckpoints(t *testing.T) {
	var seen []int
	req := Request{
		Config:            DefaultConfig(),
		Mode:              profile.Mode{Strain: profile.StrainUniform, UniformStrain: 1e-4},
		IncludeUndeformed: true,
		Progress:          func(pct int) { seen = append(seen, pct) },
	}
	out, err := Run(req)
	if err != nil {
		t.Fatal(err)
	}
	if out.Undeformed == nil {
		t.Error("undeformed spectrum requested but missing")
	}
	if len(out.Summaries) != 3 {
		t.Errorf("got %d summaries, want 3", len(out.Summaries))
	}

	want := []int{13, 21, 34, 55, 89, 100}
	if len(seen) != len(want) {
		t.Fatalf("checkpoints %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("checkpoints %v, want %v", seen, want)
		}
	}
}

func TestRunSkipsUndeformedByDefault(t *testing.T) {
	var seen []int
	out, err := Run(Request{
		Config:   DefaultConfig(),
		Mode:     profile.Mode{Strain: profile.StrainNone},
		Progress: func(pct int) { seen = append(seen, pct) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Undeformed != nil {
		t.Error("undeformed spectrum computed without being requested")
	}
	if out.Deformed == nil || len(out.Summaries) == 0 {
		t.Fatal("deformed spectrum and summaries are always produced")
	}
	for _, pct := range seen {
		if pct == progressUndeformed {
			t.Errorf("checkpoint %d reported for a skipped stage", progressUndeformed)
		}
	}
}

func TestRunRejectsShortDatasetBeforeCompute(t *testing.T) {
	// Dataset covers [0, 5] mm; the default sensors start at 22 mm.
	path := filepath.Join(t.TempDir(), "short.txt")
	if err := os.WriteFile(path, []byte("0 1e-4\n5 1e-4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var seen []int
	_, err := Run(Request{
		Config:            DefaultConfig(),
		Mode:              profile.Mode{Strain: profile.StrainNonUniform},
		DatasetPath:       path,
		LoadConfig:        profile.DefaultLoadConfig(),
		IncludeUndeformed: true,
		Progress:          func(pct int) { seen = append(seen, pct) },
	})
	if !errors.Is(err, fiber.ErrDataRange) {
		t.Fatalf("got %v, want ErrDataRange", err)
	}
	// The run must die in the load stage: no checkpoint past the start.
	for _, pct := range seen {
		if pct > progressStart {
			t.Errorf("checkpoint %d reported after a load-stage failure", pct)
		}
	}
}

func TestRunnerStateSkipsUndeformedStage(t *testing.T) {
	r := NewRunner()
	release := make(chan struct{})
	loaded := make(chan struct{})
	_, done, err := r.Submit(Request{
		Config: DefaultConfig(),
		Mode:   profile.Mode{Strain: profile.StrainNone},
		Progress: func(pct int) {
			if pct == progressLoaded {
				close(loaded)
				<-release
			}
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	<-loaded
	if s := r.State(); s != StateDeformed {
		t.Errorf("state %s after loading without an undeformed stage, want %s", s, StateDeformed)
	}
	close(release)
	if o := <-done; o.State != StateDone {
		t.Fatalf("state %s, err %v", o.State, o.Err)
	}
}

func TestRunnerStateWhileBusy(t *testing.T) {
	r := NewRunner()
	release := make(chan struct{})
	started := make(chan struct{})
	_, done, err := r.Submit(Request{
		Config: DefaultConfig(),
		Mode:   profile.Mode{Strain: profile.StrainNone},
		Progress: func(pct int) {
			if pct == progressStart {
				close(started)
				<-release
			}
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	<-started
	if s := r.State(); s == StateIdle || s == StateDone || s == StateFailed {
		t.Errorf("state %s while run in flight", s)
	}
	close(release)
	<-done

	// Give the terminal state a moment to settle even though the outcome
	// channel already fired.
	r.Wait()
	deadline := time.Now().Add(time.Second)
	for r.State() != StateDone && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if s := r.State(); s != StateDone {
		t.Errorf("terminal state %s, want %s", s, StateDone)
	}
}
