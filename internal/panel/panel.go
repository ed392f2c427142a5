// Package panel implements the external-command sampling loop used by
// pekwm_panel-style status widgets (spec.md 4.6): a table of shell
// commands on their own interval, each producing newline-terminated
// "KEY value" records (or, for commands with an assignment target, a
// single variable's value taken from the last complete line) that feed
// a shared variable table.
//
// Grounded on src/panel/pekwm_panel_sysinfo.c's line-oriented sampling
// loop for the scheduling/backoff shape (one in-flight instance per
// command, doubling backoff on failure up to a cap) and on
// cortile's per-package logrus.Entry usage for logging. Process
// control uses golang.org/x/sys/unix.Kill to signal a command's whole
// process group on shutdown, since os/exec alone has no group-signal
// primitive.
package panel

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 60 * time.Second
)

// VarData is the shared table external commands write sampled values
// into (spec.md 3 "a shared VarData map").
type VarData struct {
	mu   sync.Mutex
	vars map[string]string
}

// NewVarData creates an empty variable table.
func NewVarData() *VarData { return &VarData{vars: make(map[string]string)} }

// Set records value under key.
func (v *VarData) Set(key, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vars[key] = value
}

// Get returns the value for key and whether it has ever been set.
func (v *VarData) Get(key string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.vars[key]
	return s, ok
}

// Command is one row of the ExternalCommandData table (spec.md 4.6
// "Command set").
type Command struct {
	Name     string
	Line     string // shell command line, run via `sh -c`
	Interval time.Duration
	// Assign is the variable name that receives the last complete
	// output line as-is. Empty means every complete line is instead
	// parsed as "KEY value" and committed directly.
	Assign string

	mu      sync.Mutex
	running bool
	nextDue time.Time
	backoff time.Duration
	cmd     *exec.Cmd
}

// Sampler runs a set of Commands on their own schedule, committing
// their output into a shared VarData (spec.md 4.6).
type Sampler struct {
	mu       sync.Mutex
	commands []*Command
	vars     *VarData
	log      *logrus.Entry
}

// NewSampler creates a Sampler writing into vars.
func NewSampler(vars *VarData, log *logrus.Entry) *Sampler {
	return &Sampler{vars: vars, log: log}
}

// Add registers cmd, due immediately on the next Tick.
func (s *Sampler) Add(cmd *Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, cmd)
}

// Tick launches every command whose next-due time has passed and which
// has no instance still in flight (spec.md 4.6 "Backpressure": "at most
// one in-flight instance per command; if the previous run has not
// completed by its next tick, the next run is skipped and the event
// logged").
func (s *Sampler) Tick(now time.Time) {
	s.mu.Lock()
	commands := append([]*Command(nil), s.commands...)
	s.mu.Unlock()

	for _, c := range commands {
		c.mu.Lock()
		due := c.nextDue.IsZero() || !now.Before(c.nextDue)
		running := c.running
		c.mu.Unlock()
		if running {
			s.log.WithField("command", c.Name).Debug("panel: previous sample still running, skipping tick")
			continue
		}
		if !due {
			continue
		}
		s.launch(c)
	}
}

func (s *Sampler) launch(c *Command) {
	cmd := exec.Command("sh", "-c", c.Line)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.log.WithError(err).WithField("command", c.Name).Warn("panel: failed to open stdout pipe")
		s.scheduleRetry(c)
		return
	}
	if err := cmd.Start(); err != nil {
		s.log.WithError(err).WithField("command", c.Name).Warn("panel: failed to spawn command")
		s.scheduleRetry(c)
		return
	}

	c.mu.Lock()
	c.running = true
	c.cmd = cmd
	c.mu.Unlock()

	go s.drain(c, stdout)
}

// scheduleRetry backs off c after a launch failure (stdout pipe or
// spawn error), using the same doubling schedule drain applies to a
// command that exits non-zero.
func (s *Sampler) scheduleRetry(c *Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backoff == 0 {
		c.backoff = initialBackoff
	} else {
		c.backoff *= 2
		if c.backoff > maxBackoff {
			c.backoff = maxBackoff
		}
	}
	c.nextDue = time.Now().Add(c.backoff)
}

// drain reads complete lines as they arrive, commits each one, then
// waits for the process to exit and reschedules the command -- on
// success at its normal interval, on failure with a doubling backoff
// capped at maxBackoff (spec.md 7 "Child process spawn failure...
// doubling its interval up to a cap").
func (s *Sampler) drain(c *Command, stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		s.commit(c, scanner.Text())
	}

	err := c.cmd.Wait()

	c.mu.Lock()
	c.running = false
	if err != nil {
		if c.backoff == 0 {
			c.backoff = initialBackoff
		} else {
			c.backoff *= 2
			if c.backoff > maxBackoff {
				c.backoff = maxBackoff
			}
		}
		c.nextDue = time.Now().Add(c.backoff)
		s.log.WithError(err).WithField("command", c.Name).
			WithField("next_retry", c.backoff).Warn("panel: sample command failed")
	} else {
		c.backoff = 0
		c.nextDue = time.Now().Add(c.Interval)
	}
	c.mu.Unlock()
}

// commit applies one complete output line from c to the shared
// variable table, either overwriting c.Assign directly or parsing the
// line as "KEY value" (spec.md 4.6 "Scheduling": "A command with an
// assignment target commits the last complete line as the variable's
// value").
func (s *Sampler) commit(c *Command, line string) {
	if c.Assign != "" {
		s.vars.Set(c.Assign, line)
		return
	}
	key, value, ok := strings.Cut(line, " ")
	if !ok {
		return
	}
	s.vars.Set(key, value)
}

// Shutdown signals every still-running command's process group with
// SIGINT so child processes (and anything they themselves spawned via
// the shell) exit promptly (spec.md 5 "every grab/resource is released
// on every exit path").
func (s *Sampler) Shutdown() {
	s.mu.Lock()
	commands := append([]*Command(nil), s.commands...)
	s.mu.Unlock()

	for _, c := range commands {
		c.mu.Lock()
		running := c.running
		cmd := c.cmd
		c.mu.Unlock()
		if !running || cmd == nil || cmd.Process == nil {
			continue
		}
		if err := unix.Kill(-cmd.Process.Pid, unix.SIGINT); err != nil {
			s.log.WithError(err).WithField("command", c.Name).
				Debug("panel: failed to signal command process group")
		}
	}
}

// Commands returns the currently registered commands, for introspection
// and tests.
func (s *Sampler) Commands() []*Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Command(nil), s.commands...)
}

// String renders a Command for logging.
func (c *Command) String() string {
	return fmt.Sprintf("%s(%q)", c.Name, c.Line)
}
