package command

import (
	"context"
	"errors"
)

// ErrBusy is returned by Dispatch when a command is already running.
var ErrBusy = errors.New("command: scheduler already has a command in flight")

// Scheduler holds the single in-flight command slot the interpreter blocks
// on. Only one command runs at a time; the scheduler itself is the game's
// event loop, never reentered from background threads.
type Scheduler struct {
	running RunningCommand
}

// Busy reports whether a command is currently in flight.
func (s *Scheduler) Busy() bool {
	return s.running != nil
}

// Dispatch applies the command's state effect and starts it. If Start
// completes the command immediately (a nil RunningCommand), the scheduler
// stays idle; otherwise the command occupies the scheduler's slot until a
// subsequent Poll reports it done.
func (s *Scheduler) Dispatch(ctx context.Context, cmd StartableCommand, env *Env) error {
	if s.running != nil {
		return ErrBusy
	}
	cmd.ApplyState(env.VM)
	running, err := cmd.Start(ctx, env)
	if err != nil {
		return err
	}
	s.running = running
	return nil
}

// Poll advances the in-flight command, if any, and reports whether the
// scheduler is now idle (and so the interpreter may fetch its next
// instruction). fastForward is propagated to the running command unchanged.
func (s *Scheduler) Poll(ctx context.Context, env *Env, fastForward bool) (idle bool, err error) {
	if s.running == nil {
		return true, nil
	}
	done, err := s.running.Update(ctx, env, fastForward)
	if err != nil {
		s.running = nil
		return true, err
	}
	if done {
		s.running = nil
	}
	return s.running == nil, nil
}
