package httplog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("falls back to the process default", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("returns the bound logger", func(t *testing.T) {
		l, buf := newCaptureLogger(t)
		ctx := WithLogger(context.Background(), l)

		FromContext(ctx).InfoWith().Msg("through context")

		entries := parseEntries(t, buf.String())
		require.Len(t, entries, 1)
		assert.Equal(t, "through context", entries[0]["message"])
	})

	t.Run("FromRequest reads the request context", func(t *testing.T) {
		l, buf := newCaptureLogger(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithLogger(req.Context(), l))

		FromRequest(req).InfoWith().Msg("through request")

		entries := parseEntries(t, buf.String())
		require.Len(t, entries, 1)
		assert.Equal(t, "through request", entries[0]["message"])
	})
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := withRequestID(context.Background(), "req-55")
	assert.Equal(t, "req-55", RequestIDFromContext(ctx))
}
