package logging

import (
	"fmt"
	"os"
	"runtime/debug"

	"go.uber.org/atomic"
)

// osExit is swapped out in tests so fatal paths can be asserted without
// killing the test binary.
var osExit = os.Exit

// fatalHandler holds the Logger that CapturePanic and Go report through.
// Installed once at startup, never torn down.
var fatalHandler atomic.Pointer[Logger]

// PanicError wraps a recovered panic value that is not an error so it can
// travel through the error serialization pipeline.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// InstallFatalHandlers registers l as the process fatal logger used by
// CapturePanic and Go. The first registration wins, so a library cannot
// displace the supervisor main installed. It reports whether l took effect.
// When nothing is installed, the handlers fall back to Default().
func InstallFatalHandlers(l Logger) bool {
	if l == nil {
		return false
	}
	return fatalHandler.CompareAndSwap(nil, &l)
}

func processFatalLogger() Logger {
	if l := fatalHandler.Load(); l != nil {
		return *l
	}
	return Default()
}

// CapturePanic recovers a panic on the current goroutine, writes one fatal
// entry carrying the serialized failure and its stack, and terminates the
// process with a non-zero status. Defer it at the top of main and of any
// goroutine whose failure must not vanish silently:
//
//	func main() {
//		logging.InstallFatalHandlers(log)
//		defer logging.CapturePanic()
//		// ...
//	}
func CapturePanic() {
	rec := recover()
	if rec == nil {
		return
	}

	err, ok := rec.(error)
	if !ok {
		err = &PanicError{Value: rec}
	}

	processFatalLogger().FatalWith().
		Err(err).
		Str("stack", string(debug.Stack())).
		Msg("Unrecoverable failure")

	// The fatal event exits after the write; this backstop covers no-op
	// handlers, which skip the write and its exit.
	osExit(1)
}

// Go runs fn on a new goroutine with the fatal handler installed, so a
// fault in background work is logged before it takes the process down
// instead of crashing without a trace.
func Go(fn func()) {
	go func() {
		defer CapturePanic()
		fn()
	}()
}
