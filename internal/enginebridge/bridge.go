// Package enginebridge dispatches closures that touch the non-threadsafe
// engine onto a dedicated, single-use goroutine per call, and marshals the
// result back to the caller. This is the gateway's central architectural
// decision (spec §4.1, §9): the engine's registry handle and derived
// client must never be touched except under this confinement.
package enginebridge

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ST0x-Technology/st0x.rest.api/internal/metrics"
)

// Kind distinguishes the bridge's own failure modes from a domain failure
// the dispatched closure produced itself.
type Kind int

const (
	// KindWorkerSpawn means the dedicated goroutine could not be started.
	// Run never returns this kind, since starting a goroutine cannot fail;
	// it is kept distinct from KindWorkerPanicked for symmetry with spec §4.1.
	KindWorkerSpawn Kind = iota
	// KindWorkerPanicked means the worker completed without delivering an
	// answer — it panicked, or the caller stopped waiting before it could.
	KindWorkerPanicked
)

// Error is a bridge-level failure, distinct from whatever domain error the
// dispatched closure itself returns.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func workerPanicked(detail interface{}) *Error {
	return &Error{Kind: KindWorkerPanicked, Message: fmt.Sprintf("engine worker panicked: %v", detail)}
}

// Run spawns a fresh goroutine, pinned to its OS thread for the engine's
// single-threaded confinement requirement, drives fn to completion, and
// delivers its result through a one-shot handoff. fn's result (value and
// error) are both returned; the error is either fn's own domain error or a
// *Error describing a bridge-level failure.
//
// If ctx is cancelled before fn completes, Run returns a *Error of kind
// KindWorkerPanicked — the worker itself is detached and keeps running to
// completion; its result is simply discarded (spec §5, "Cancellation").
func Run[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	resultCh := make(chan outcome, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		defer func() {
			if r := recover(); r != nil {
				var zero T
				// Never panics the caller's goroutine; the caller observes
				// this as a KindWorkerPanicked bridge error.
				select {
				case resultCh <- outcome{value: zero, err: workerPanicked(r)}:
				default:
				}
			}
		}()

		value, err := fn()
		resultCh <- outcome{value: value, err: err}
	}()

	select {
	case res := <-resultCh:
		recordOutcome(res.err)
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		err := workerPanicked(ctx.Err())
		recordOutcome(err)
		return zero, err
	}
}

func recordOutcome(err error) {
	outcome := "ok"
	if bridgeErr, ok := err.(*Error); ok && bridgeErr.Kind == KindWorkerPanicked {
		outcome = "panicked"
	} else if err != nil {
		outcome = "error"
	}
	metrics.EngineBridgeCalls.WithLabelValues(outcome).Inc()
}
