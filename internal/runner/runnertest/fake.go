// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"koosh-cursor-tools/internal/runner"
)

// Call is one recorded invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Handler simulates one binary.
type Handler func(ctx context.Context, call Call) (runner.Result, error)

// Fake records every call and dispatches it to the handler registered for the
// binary name. Binaries without a handler succeed with empty output; binaries
// listed in Missing are reported absent by LookPath and fail to start.
type Fake struct {
	Handlers map[string]Handler
	Missing  map[string]bool

	mu    sync.Mutex
	calls []Call
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{Handlers: make(map[string]Handler), Missing: make(map[string]bool)}
}

// Handle registers h for name and returns f for chaining.
func (f *Fake) Handle(name string, h Handler) *Fake {
	f.Handlers[name] = h
	return f
}

// Remove marks name as not installed.
func (f *Fake) Remove(name string) *Fake {
	f.Missing[name] = true
	return f
}

// LookPath implements runner.Runner.
func (f *Fake) LookPath(name string) bool {
	return !f.Missing[name]
}

// Run implements runner.Runner.
func (f *Fake) Run(ctx context.Context, dir, name string, args ...string) (runner.Result, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Missing[name] {
		return runner.Result{}, &runner.CommandError{Command: call.String(), Err: errors.New("executable file not found in $PATH")}
	}
	if h, ok := f.Handlers[name]; ok {
		return h(ctx, call)
	}
	return runner.Result{}, nil
}

// Calls returns every recorded call in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls of one binary.
func (f *Fake) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Fail returns a handler that exits non-zero with stderr.
func Fail(stderr string) Handler {
	return func(_ context.Context, call Call) (runner.Result, error) {
		return runner.Result{Stderr: []byte(stderr)}, &runner.CommandError{
			Command: call.String(),
			Stderr:  stderr,
			Err:     errors.New("exit status 1"),
		}
	}
}

// Stdout returns a handler that succeeds printing out.
func Stdout(out string) Handler {
	return func(context.Context, Call) (runner.Result, error) {
		return runner.Result{Stdout: []byte(out)}, nil
	}
}

// Flag returns the value following flag in args, or "".
func Flag(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}
