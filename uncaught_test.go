package rescue

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUncaughtHandler(t *testing.T) {
	ctx := context.Background()
	h, ok := GetUncaughtHandler(ctx)
	require.False(t, ok)
	require.Nil(t, h)

	ctx = WithUncaughtHandler(ctx, func(Diagnostic) {})
	h, ok = GetUncaughtHandler(ctx)
	require.True(t, ok)
	require.NotNil(t, h)
}

// TestUncaughtHandlerReceivesDiagnostic raises outside any region on a
// dedicated goroutine; the installed handler records the diagnostic and
// stops the goroutine instead of returning.
func TestUncaughtHandlerReceivesDiagnostic(t *testing.T) {
	got := make(chan Diagnostic, 1)
	ctx := WithUncaughtHandler(context.Background(), func(d Diagnostic) {
		got <- d
		runtime.Goexit()
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		Raise(ctx, 42)
	}()
	<-done
	d := <-got
	require.Equal(t, 42, d.Code)
	require.Contains(t, d.File, "uncaught_test.go")
	require.NotZero(t, d.Line)
	require.Contains(t, d.Function, "TestUncaughtHandlerReceivesDiagnostic")
}

// TestUncaughtHandlerThatReturnsStillAborts verifies the fallback: a
// handler that returns is followed by the report-and-exit path.
func TestUncaughtHandlerThatReturnsStillAborts(t *testing.T) {
	buf := captureLogs(t)

	type exitSentinel struct{ code int }
	prevExit := exitProcess
	exitProcess = func(code int) { panic(exitSentinel{code: code}) }
	defer func() { exitProcess = prevExit }()

	handlerRan := false
	ctx := WithUncaughtHandler(context.Background(), func(Diagnostic) {
		handlerRan = true
	})

	defer func() {
		rec := recover()
		sentinel, ok := rec.(exitSentinel)
		require.True(t, ok, "expected process exit, got %v", rec)
		require.Equal(t, 1, sentinel.code)
		require.True(t, handlerRan)
		require.Contains(t, buf.String(), "uncaught exception")
	}()
	Raise(ctx, 13)
}

// TestUnhandledCodeEscapingEveryRegionAborts covers propagation ending at
// the uncaught path after the outermost finally guard has run.
func TestUnhandledCodeEscapingEveryRegionAborts(t *testing.T) {
	finallyRan := false
	stopped := make(chan struct{})
	ctx := WithUncaughtHandler(context.Background(), func(d Diagnostic) {
		require.Equal(t, 6, d.Code)
		runtime.Goexit()
	})
	go func() {
		defer close(stopped)
		Do(ctx, func(ctx context.Context) {
			Raise(ctx, 6)
		},
			Catch(5, nil),
			Finally(func(context.Context) { finallyRan = true }),
		)
	}()
	<-stopped
	require.True(t, finallyRan)
}

// TestUncaughtAbortsProcess re-executes the test binary so the real
// os.Exit path can be observed: non-zero status and a report on stderr.
func TestUncaughtAbortsProcess(t *testing.T) {
	if os.Getenv("RESCUE_TEST_UNCAUGHT") == "1" {
		Raise(context.Background(), 42)
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=TestUncaughtAbortsProcess")
	cmd.Env = append(os.Environ(), "RESCUE_TEST_UNCAUGHT=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.ExitCode())
	require.True(t, strings.Contains(stderr.String(), "uncaught exception"),
		"stderr should carry the report, got: %s", stderr.String())
}
