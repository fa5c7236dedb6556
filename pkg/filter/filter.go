// Package filter evaluates boolean expressions against firewall events,
// letting callers keep only the records they care about.
//
// Expressions use expr-lang syntax over the event's fields, e.g.
//
//	status == "Info" && process_name == "Dropbox"
//	action contains "Deny"
package filter

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/appfwlog/appfwlog/pkg/event"
)

// Env is the expression environment: one event's fields under their wire
// names.
type Env struct {
	Timestamp    time.Time `expr:"timestamp"`
	ComputerName string    `expr:"computer_name"`
	Agent        string    `expr:"agent"`
	Status       string    `expr:"status"`
	ProcessName  string    `expr:"process_name"`
	Action       string    `expr:"action"`
	Source       string    `expr:"source"`
}

func envFor(ev *event.Event) Env {
	return Env{
		Timestamp:    ev.Timestamp,
		ComputerName: ev.ComputerName,
		Agent:        ev.Agent,
		Status:       ev.Status,
		ProcessName:  ev.ProcessName,
		Action:       ev.Action,
		Source:       ev.Source,
	}
}

// Filter is a compiled event predicate.
type Filter struct {
	src     string
	program *vm.Program
}

// Compile parses and type-checks an expression. The expression must
// evaluate to a boolean.
func Compile(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", src, err)
	}
	return &Filter{src: src, program: program}, nil
}

// Match evaluates the filter against one event.
func (f *Filter) Match(ev *event.Event) (bool, error) {
	out, err := expr.Run(f.program, envFor(ev))
	if err != nil {
		return false, fmt.Errorf("evaluating filter %q: %w", f.src, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("filter %q did not return a boolean", f.src)
	}
	return ok, nil
}

// String returns the original expression.
func (f *Filter) String() string {
	return f.src
}

// Sink wraps next and forwards only events matching f.
type Sink struct {
	next event.Sink
	f    *Filter
}

// NewSink creates a filtering sink in front of next.
func NewSink(next event.Sink, f *Filter) *Sink {
	return &Sink{next: next, f: f}
}

// Emit forwards ev when it matches the filter.
func (s *Sink) Emit(ev *event.Event) error {
	ok, err := s.f.Match(ev)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return s.next.Emit(ev)
}
