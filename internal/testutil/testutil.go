// Package testutil provides fakes for the command layer shared by package tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/flatbridge/internal/command"
)

// Call records one Runner invocation.
type Call struct {
	Name string
	Args []string
}

// Line renders the call as a single space-joined string for assertions.
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Responder scripts the outcome of a Runner call.
type Responder func(name string, args []string) (command.Result, error)

// FakeRunner is a scripted command.Runner that records every call.
// Calls with no matching rule succeed with empty output.
type FakeRunner struct {
	mu    sync.Mutex
	calls []Call
	rules []rule
}

type rule struct {
	prefix  string
	respond Responder
}

// NewFakeRunner creates an empty fake.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// On registers a responder for calls whose joined command line starts with
// prefix. The longest matching prefix wins; among equal prefixes the later
// rule wins.
func (f *FakeRunner) On(prefix string, respond Responder) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{prefix: prefix, respond: respond})
	return f
}

// Reply is shorthand for a fixed result.
func (f *FakeRunner) Reply(prefix string, res command.Result) *FakeRunner {
	return f.On(prefix, func(string, []string) (command.Result, error) {
		return res, nil
	})
}

// Run implements command.Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (command.Result, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	rules := append([]rule(nil), f.rules...)
	f.mu.Unlock()

	line := call.Line()
	best := -1
	for i, r := range rules {
		if !strings.HasPrefix(line, r.prefix) {
			continue
		}
		if best < 0 || len(r.prefix) >= len(rules[best].prefix) {
			best = i
		}
	}
	if best < 0 {
		return command.Result{}, nil
	}
	return rules[best].respond(name, args)
}

// Calls returns a copy of the recorded calls.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Lines returns the recorded calls as command lines.
func (f *FakeRunner) Lines() []string {
	calls := f.Calls()
	lines := make([]string, 0, len(calls))
	for _, c := range calls {
		lines = append(lines, c.Line())
	}
	return lines
}

// Called reports whether any call's command line starts with prefix.
func (f *FakeRunner) Called(prefix string) bool {
	for _, line := range f.Lines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// MockLauncher is a testify mock of command.Launcher.
type MockLauncher struct {
	mock.Mock
}

// Start mocks the Start method.
func (m *MockLauncher) Start(name string, args ...string) error {
	callArgs := m.Called(name, args)
	return callArgs.Error(0)
}

// NewMockLauncher creates a launcher mock that accepts any start by default.
func NewMockLauncher(t *testing.T) *MockLauncher {
	t.Helper()
	m := new(MockLauncher)
	m.On("Start", mock.Anything, mock.Anything).Return(nil).Maybe()
	return m
}

// Paths builds a PathResolver that only knows the given executables.
func Paths(found ...string) command.PathResolver {
	known := make(map[string]bool, len(found))
	for _, name := range found {
		known[name] = true
	}
	return func(name string) (string, error) {
		if known[name] {
			return "/usr/bin/" + name, nil
		}
		return "", &notFoundError{name: name}
	}
}

type notFoundError struct{ name string }

func (e *notFoundError) Error() string {
	return "exec: \"" + e.name + "\": executable file not found in $PATH"
}
