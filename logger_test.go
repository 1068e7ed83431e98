package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newFileLogger builds a ready-to-use file-backed logger in a temp dir and
// returns it with the path of its log file.
func newFileLogger(t testing.TB, level string) (Logger, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "logs")

	l, err := New(&Options{
		Level: level,
		File: &FileOptions{
			Dir:        dir,
			Name:       "logging.log",
			MaxSizeMB:  5,
			MaxBackups: 1,
			MaxAgeDays: 1,
		},
	})
	require.NoError(t, err)
	return l, filepath.Join(dir, "logging.log")
}

func readLog(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFileLoggingCreatesAndWrites(t *testing.T) {
	l, logPath := newFileLogger(t, "debug")

	l.InfoWith().Msgf("hello %s", "world")
	l.WarnWith().Msg("be careful")

	_, err := os.Stat(logPath)
	require.NoError(t, err)

	text := readLog(t, logPath)
	require.Contains(t, text, "hello world")
	require.Contains(t, text, "be careful")
}

func TestLevelFiltering(t *testing.T) {
	l, logPath := newFileLogger(t, "warn")

	l.DebugWith().Msg("debug msg")
	l.InfoWith().Msg("info msg")
	l.WarnWith().Msg("warn msg")
	l.ErrorWith().Msg("error msg")

	s := readLog(t, logPath)
	require.NotContains(t, s, "debug msg")
	require.NotContains(t, s, "info msg")
	require.Contains(t, s, "warn msg")
	require.Contains(t, s, "error msg")
}

func TestDumpOutputs(t *testing.T) {
	type person struct {
		Name string
		Age  int
	}
	l, logPath := newFileLogger(t, "debug")

	m := map[string]int{"a": 1, "b": 2}
	s := []string{"x", "y"}
	p := person{Name: "Ada", Age: 37}

	Dump(l, nil)
	Dump(l, m)
	Dump(l, s)
	Dump(l, p)
	Dump(l, &p)

	str := readLog(t, logPath)
	// spot-check that dump wrote something meaningful
	require.Contains(t, str, "<nil>")
	require.True(t, strings.Contains(str, "a") || strings.Contains(str, "b"))
	require.Contains(t, str, "Ada")
}

func TestStructuredLogging(t *testing.T) {
	l, logPath := newFileLogger(t, "debug")

	l.InfoWith().
		Str("user_id", "12345").
		Int("count", 42).
		Bool("active", true).
		Msg("User processed")

	testErr := fmt.Errorf("test error")
	l.ErrorWith().
		Err(testErr).
		Str("operation", "database").
		Int("retry_count", 3).
		Msg("Operation failed")

	l.DebugWith().
		Float64("temperature", 98.6).
		Uint("port", 8080).
		Msg("Metrics")

	str := readLog(t, logPath)

	require.Contains(t, str, `"user_id":"12345"`)
	require.Contains(t, str, `"count":42`)
	require.Contains(t, str, `"active":true`)
	require.Contains(t, str, `"err":{`)
	require.Contains(t, str, `"message":"test error"`)
	require.Contains(t, str, `"operation":"database"`)
	require.Contains(t, str, `"retry_count":3`)
	require.Contains(t, str, `"temperature":98.6`)
	require.Contains(t, str, `"port":8080`)
}

func TestStructuredLoggingWithContext(t *testing.T) {
	l, logPath := newFileLogger(t, "debug")

	reqLogger := l.With().
		Str("request_id", "req-123").
		Str("user_id", "user-456").
		Logger()

	// All logs from reqLogger include request_id and user_id.
	reqLogger.InfoWith().Str("action", "start").Msg("Request started")
	reqLogger.InfoWith().Str("action", "end").Int("status", 200).Msg("Request completed")

	str := readLog(t, logPath)

	requestIDCount := strings.Count(str, `"request_id":"req-123"`)
	userIDCount := strings.Count(str, `"user_id":"user-456"`)

	require.Equal(t, 2, requestIDCount, "request_id should appear in both logs")
	require.Equal(t, 2, userIDCount, "user_id should appear in both logs")
	require.Contains(t, str, `"action":"start"`)
	require.Contains(t, str, `"action":"end"`)
	require.Contains(t, str, `"status":200`)
}

func TestStructuredLoggingArraysAndDuration(t *testing.T) {
	l, logPath := newFileLogger(t, "debug")

	l.InfoWith().
		Strs("tags", []string{"golang", "logging", "structured"}).
		Dur("elapsed", 250*time.Millisecond).
		Msg("Tagged operation")

	str := readLog(t, logPath)

	require.Contains(t, str, `"tags":["golang","logging","structured"]`)
	require.Contains(t, str, `"elapsed":250`)
}

func TestStructuredLoggingWithNesting(t *testing.T) {
	l, logPath := newFileLogger(t, "debug")

	l.InfoWith().
		Str("event", "user_action").
		Dict("user", func(e LogEvent) {
			e.Str("id", "user-123")
			e.Int("age", 30)
		}).
		Dict("metadata", func(e LogEvent) {
			e.Str("ip", "192.168.1.1")
			e.Bool("verified", true)
		}).
		Msg("Nested structured log")

	str := readLog(t, logPath)

	require.Contains(t, str, `"user":`)
	require.Contains(t, str, `"id":"user-123"`)
	require.Contains(t, str, `"age":30`)
	require.Contains(t, str, `"metadata":`)
	require.Contains(t, str, `"ip":"192.168.1.1"`)
	require.Contains(t, str, `"verified":true`)
}

func TestStructuredLoggingConcurrent(t *testing.T) {
	l, _ := newFileLogger(t, "debug")

	const goroutines = 100
	const iterations = 50

	done := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			for j := 0; j < iterations; j++ {
				l.InfoWith().
					Int("goroutine_id", id).
					Int("iteration", j).
					Str("status", "running").
					Msg("Concurrent log")
			}
			done <- true
		}(i)
	}

	for i := 0; i < goroutines; i++ {
		<-done
	}
}

func TestConcurrentDump(t *testing.T) {
	l, _ := newFileLogger(t, "debug")

	type testStruct struct {
		Field1 string
		Field2 int
	}

	const goroutines = 50
	done := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			data := testStruct{
				Field1: fmt.Sprintf("test-%d", id),
				Field2: id,
			}
			for j := 0; j < 10; j++ {
				Dump(l, data)
			}
			done <- true
		}(i)
	}

	for i := 0; i < goroutines; i++ {
		<-done
	}
}
