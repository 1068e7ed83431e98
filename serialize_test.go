package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// opError is a typical rich error type: json-tagged fields, a captured
// stack, an unexported cause.
type opError struct {
	Op      string `json:"op"`
	Code    int
	Message string
	Stack   string
	cause   error
}

func (e *opError) Error() string { return e.Message }

// tracedError exposes its stack through a method instead of a field.
type tracedError struct {
	msg   string
	trace string
}

func (e *tracedError) Error() string { return e.msg }
func (e *tracedError) Stack() string { return e.trace }

func TestIsErrorLike(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"nil", nil, false},
		{"standard error", errors.New("boom"), true},
		{"typed nil error", (*opError)(nil), false},
		{"map with message", map[string]any{"message": "x"}, true},
		{"map without message", map[string]any{}, false},
		{"map with empty message", map[string]any{"message": ""}, false},
		{"fields with message", Fields{"message": "x"}, true},
		{"string map with message", map[string]string{"message": "x"}, true},
		{"struct with message", struct{ Message string }{Message: "x"}, true},
		{"pointer to struct with message", &struct{ Message string }{Message: "x"}, true},
		{"struct with empty message", struct{ Message string }{}, false},
		{"plain string", "boom", false},
		{"integer", 42, false},
		{"slice", []string{"boom"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsErrorLike(tt.value))
		})
	}
}

func TestSerializeError(t *testing.T) {
	t.Run("standard error", func(t *testing.T) {
		out := SerializeError(errors.New("boom"))
		assert.Equal(t, "errorString", out["type"])
		assert.Equal(t, "boom", out["message"])
		_, hasStack := out["stack"]
		assert.False(t, hasStack)
	})

	t.Run("struct error carries its own fields", func(t *testing.T) {
		err := &opError{
			Op:      "db.connect",
			Code:    7,
			Message: "dial failed",
			Stack:   "goroutine 1 [running]",
			cause:   errors.New("hidden"),
		}
		out := SerializeError(err)

		assert.Equal(t, "opError", out["type"])
		assert.Equal(t, "dial failed", out["message"])
		assert.Equal(t, "goroutine 1 [running]", out["stack"])
		assert.Equal(t, "db.connect", out["op"], "json tag wins over the field name")
		assert.Equal(t, 7, out["code"])
		_, leaked := out["cause"]
		assert.False(t, leaked, "unexported fields stay private")
	})

	t.Run("stack method is preferred", func(t *testing.T) {
		err := &tracedError{msg: "boom", trace: "goroutine 7 [running]"}
		out := SerializeError(err)
		assert.Equal(t, "goroutine 7 [running]", out["stack"])
	})

	t.Run("map error", func(t *testing.T) {
		out := SerializeError(map[string]any{
			"name":    "TimeoutError",
			"message": "deadline exceeded",
			"stack":   "at fetch",
			"code":    504,
		})

		assert.Equal(t, "TimeoutError", out["type"])
		assert.Equal(t, "deadline exceeded", out["message"])
		assert.Equal(t, "at fetch", out["stack"])
		assert.Equal(t, 504, out["code"])
		_, hasName := out["name"]
		assert.False(t, hasName, "name is folded into type")
	})

	t.Run("map error without a name", func(t *testing.T) {
		out := SerializeError(map[string]any{"message": "anonymous"})
		assert.Equal(t, "error", out["type"])
		assert.Equal(t, "anonymous", out["message"])
	})

	t.Run("string map error", func(t *testing.T) {
		out := SerializeError(map[string]string{"message": "flat", "hint": "retry"})
		assert.Equal(t, "error", out["type"])
		assert.Equal(t, "flat", out["message"])
		assert.Equal(t, "retry", out["hint"])
	})

	t.Run("error-valued fields are flattened to strings", func(t *testing.T) {
		type Base struct {
			Message string
			Inner   error
		}
		type layered struct{ Base }

		err := &layered{Base{Message: "outer", Inner: errors.New("inner cause")}}
		out := SerializeError(err)
		assert.Equal(t, "outer", out["message"])
		assert.Equal(t, "inner cause", out["inner"], "embedded fields are promoted and error values flattened")
	})

	t.Run("non-error values are stringified", func(t *testing.T) {
		assert.Equal(t, map[string]any{"error": "42"}, SerializeError(42))
		assert.Equal(t, map[string]any{"error": "boom"}, SerializeError("boom"))
		assert.Equal(t, map[string]any{"error": "<nil>"}, SerializeError(nil))
	})
}

func TestExtractQueryParams(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected map[string]string
	}{
		{"absolute url", "https://example.com/users?x=1&y=two", map[string]string{"x": "1", "y": "two"}},
		{"relative path", "/users?x=1", map[string]string{"x": "1"}},
		{"repeated parameter keeps the last value", "/items?a=1&a=2", map[string]string{"a": "2"}},
		{"no query", "/users", map[string]string{}},
		{"encoded values", "/search?q=hello%20world", map[string]string{"q": "hello world"}},
		{"unparseable input", "://bad", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractQueryParams(tt.rawURL))
		})
	}
}

func TestSerializedErrorSurvivesEncoding(t *testing.T) {
	// End to end through the event pipeline: the struct error's own fields
	// must land in the emitted JSON object.
	l, buf := newBufferLogger(t, nil)

	l.ErrorWith().Err(&opError{Op: "queue.pop", Code: 3, Message: "empty"}).Msg("drained")

	entries := decodeEntries(t, buf.String())
	require.Len(t, entries, 1)

	errField, ok := entries[0][DefaultErrorKey].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "opError", errField["type"])
	assert.Equal(t, "empty", errField["message"])
	assert.Equal(t, "queue.pop", errField["op"])
	assert.Equal(t, float64(3), errField["code"])
}
