package service

import (
	"context"
	"fmt"
	"sort"
)

// ErrUnknownCommand is returned by DispatchCustomCommand when the named
// command is not registered. Match it with errors.Is.
var ErrUnknownCommand = fmt.Errorf("unknown custom command")

// CustomCommandNames lists the registered custom command names, sorted.
func (s *Supervisor) CustomCommandNames() []string {
	names := make([]string, 0, len(s.cfg.CustomCommands))
	for name := range s.cfg.CustomCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DispatchCustomCommand invokes the named custom command with this
// supervisor as its context. The callback's result and error are returned
// unchanged; the controller never reinterprets callback failures.
func (s *Supervisor) DispatchCustomCommand(ctx context.Context, name string) (Result, error) {
	fn, ok := s.cfg.CustomCommands[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return s.do(name, func() (Result, error) { return fn(ctx, s) })
}
