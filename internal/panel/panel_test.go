package panel

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func waitForVar(t *testing.T, vars *VarData, key, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v, ok := vars.Get(key); ok && v == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s == %q", key, want)
}

func TestAssignmentTargetKeepsLastCompleteLine(t *testing.T) {
	vars := NewVarData()
	s := NewSampler(vars, newTestLogger())
	cmd := &Command{
		Name:     "var-sample",
		Line:     `printf 'partial'; printf 'first\nsecond\n'`,
		Interval: time.Hour,
		Assign:   "var",
	}
	s.Add(cmd)
	s.Tick(time.Now())
	waitForVar(t, vars, "var", "second")
}

func TestKeyValueLinesCommitDirectly(t *testing.T) {
	vars := NewVarData()
	s := NewSampler(vars, newTestLogger())
	cmd := &Command{
		Name:     "kv-sample",
		Line:     `printf 'cpu 42\nmem 80\n'`,
		Interval: time.Hour,
	}
	s.Add(cmd)
	s.Tick(time.Now())
	waitForVar(t, vars, "cpu", "42")
	waitForVar(t, vars, "mem", "80")
}

func TestBackpressureSkipsStillRunningCommand(t *testing.T) {
	vars := NewVarData()
	s := NewSampler(vars, newTestLogger())
	cmd := &Command{
		Name:     "slow",
		Line:     `sleep 1; printf 'done x\n'`,
		Interval: time.Millisecond,
	}
	s.Add(cmd)
	s.Tick(time.Now())
	s.Tick(time.Now())

	cmd.mu.Lock()
	running := cmd.running
	cmd.mu.Unlock()
	if !running {
		t.Fatalf("expected command to still be in flight")
	}
	waitForVar(t, vars, "done", "x")
}

func TestFailedCommandBacksOff(t *testing.T) {
	vars := NewVarData()
	s := NewSampler(vars, newTestLogger())
	cmd := &Command{
		Name:     "fails",
		Line:     `exit 1`,
		Interval: time.Millisecond,
	}
	s.Add(cmd)
	s.Tick(time.Now())

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		cmd.mu.Lock()
		backoff := cmd.backoff
		running := cmd.running
		cmd.mu.Unlock()
		if !running && backoff == initialBackoff {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected failed command to back off to %v", initialBackoff)
}
