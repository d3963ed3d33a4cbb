package uci

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"
)

// Process is a running engine binary with its standard input and output
// piped to the caller.
type Process struct {
	path string
	cmd  *exec.Cmd

	stdin  io.WriteCloser
	stdout *os.File

	quitTimeout time.Duration
	logger      *slog.Logger

	exited  chan struct{}
	waitErr error

	stopOnce sync.Once
	stopErr  error
}

// StartProcess launches the engine described by cfg. The binary is located
// with FindExecutable and receives --config=<ConfigFile> when one is set.
func StartProcess(cfg Config) (*Process, error) {
	path, err := FindExecutable(cfg.Path)
	if err != nil {
		return nil, err
	}
	var args []string
	if cfg.ConfigFile != "" {
		args = append(args, "--config="+cfg.ConfigFile)
	}
	args = append(args, cfg.Args...)

	cmd := exec.Command(path, args...)
	if len(cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), cfg.Env...)
	}
	cmd.Stderr = cfg.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	// An os.Pipe rather than StdoutPipe, so output written just before the
	// engine exits can still be read after Wait returns.
	stdout, childStdout, err := os.Pipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	cmd.Stdout = childStdout

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		childStdout.Close()
		return nil, fmt.Errorf("failed to launch %s: %w", path, err)
	}
	childStdout.Close()

	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger
	}
	p := &Process{
		path:        path,
		cmd:         cmd,
		stdin:       stdin,
		stdout:      stdout,
		quitTimeout: cfg.quitTimeout(),
		logger:      logger,
		exited:      make(chan struct{}),
	}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.exited)
	}()
	logger.Debug("engine launched", "path", path, "args", args, "pid", cmd.Process.Pid)
	return p, nil
}

// Path returns the resolved binary path.
func (p *Process) Path() string { return p.path }

// Pid returns the process id.
func (p *Process) Pid() int { return p.cmd.Process.Pid }

// Stdin returns the engine's standard input.
func (p *Process) Stdin() io.Writer { return p.stdin }

// Stdout returns the engine's standard output.
func (p *Process) Stdout() io.Reader { return p.stdout }

// Done is closed when the process has exited.
func (p *Process) Done() <-chan struct{} { return p.exited }

// Stop closes the engine's input and waits up to the quit timeout for it to
// exit, then kills it. Callers normally send quit first. Only the first call
// does the work; every call returns its result.
func (p *Process) Stop() error {
	p.stopOnce.Do(func() {
		p.stdin.Close()
		select {
		case <-p.exited:
			p.stopErr = p.waitErr
		case <-time.After(p.quitTimeout):
			p.logger.Warn("engine did not exit, killing it", "pid", p.Pid(), "timeout", p.quitTimeout)
			if err := p.cmd.Process.Kill(); err != nil {
				p.logger.Warn("kill failed", "pid", p.Pid(), "error", err)
			}
			<-p.exited
			p.stopErr = fmt.Errorf("engine %s killed after %v without exiting", p.path, p.quitTimeout)
		}
		p.stdout.Close()
		p.logger.Debug("engine stopped", "pid", p.Pid(), "error", p.stopErr)
	})
	return p.stopErr
}
