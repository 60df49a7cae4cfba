package wm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/dwn/internal/platform"
)

// ErrStopped is returned by Do once the event loop has exited.
var ErrStopped = errors.New("window manager is not running")

// Run owns the display until a quit command, a termination signal, or ctx
// is done. SIGHUP quits with restart, SIGTERM and SIGINT quit plainly.
// Events are read on a separate goroutine; everything else, including
// closures queued through Do, runs on the calling goroutine.
func (s *State) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	defer s.stopOnce.Do(func() { close(s.stopped) })

	events := make(chan platform.Event, 64)
	readErr := make(chan error, 1)
	go func() {
		defer close(events)
		for {
			ev, err := s.d.NextEvent()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	s.events = events
	defer func() { s.events = nil }()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigs)

	s.d.Sync()
	for s.running {
		if ev, ok := s.popPending(); ok {
			s.Handle(ev)
			continue
		}
		select {
		case ev, ok := <-events:
			if !ok {
				if !s.running {
					return nil
				}
				return fmt.Errorf("display connection lost: %w", <-readErr)
			}
			s.Handle(ev)
		case fn := <-s.calls:
			fn()
		case sig := <-sigs:
			s.logger.Info("received signal", "signal", sig.String())
			if sig == syscall.SIGHUP {
				s.quit(Arg{I: 1})
			} else {
				s.quit(Arg{})
			}
		case <-ctx.Done():
			s.running = false
			return ctx.Err()
		}
	}
	return nil
}

// Do runs fn on the event loop goroutine and waits for it to finish. ctx
// only bounds the wait for the loop to pick fn up; once taken, fn always
// completes before Do returns.
func (s *State) Do(ctx context.Context, fn func(*State)) error {
	finished := make(chan struct{})
	call := func() {
		defer close(finished)
		fn(s)
	}
	select {
	case s.calls <- call:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrStopped
	}
	<-finished
	return nil
}

// Query returns a snapshot taken on the event loop goroutine.
func (s *State) Query(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.Do(ctx, func(st *State) { snap = st.Snapshot() })
	return snap, err
}

// Exec runs a named command on the event loop goroutine.
func (s *State) Exec(ctx context.Context, name string, args []string) error {
	var cmdErr error
	if err := s.Do(ctx, func(st *State) { cmdErr = st.RunCommand(name, args) }); err != nil {
		return err
	}
	return cmdErr
}
