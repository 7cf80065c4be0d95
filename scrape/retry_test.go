package scrape_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	noDelays := []time.Duration{0, 0, 0}

	t.Run("returns immediately on success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := scrape.FetchWithRetryDelays(ctx, "https://x.test/", func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html>ok</html>", nil
		}, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until a fetch succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var logged []string
		html, err := scrape.FetchWithRetryDelays(ctx, "https://x.test/", func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", cardeals.Errorf(cardeals.EINTERNAL, "HTTP 503 for %s", url)
			}
			return "<html>ok</html>", nil
		}, func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, 3, calls)
		assert.Len(t, logged, 2)
	})

	t.Run("returns the last error when attempts run out", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := scrape.FetchWithRetryDelays(ctx, "https://x.test/", func(ctx context.Context, url string) (string, error) {
			calls++
			return "", cardeals.Errorf(cardeals.EINTERNAL, "attempt %d failed", calls)
		}, nil, noDelays)

		require.Error(t, err)
		assert.Equal(t, "attempt 4 failed", cardeals.ErrorMessage(err))
		assert.Equal(t, 4, calls)
	})

	t.Run("stops retrying on context cancellation", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		calls := 0
		_, err := scrape.FetchWithRetryDelays(cctx, "https://x.test/", func(ctx context.Context, url string) (string, error) {
			calls++
			cancel()
			return "", cardeals.Errorf(cardeals.EINTERNAL, "boom")
		}, nil, noDelays)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}, scrape.DefaultRetryDelays())
}
