package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures records and attributes", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("favorite toggled", slog.String("asset_id", "market_share"))
		logger.Error("save failed", slog.Int("code", 500))

		records := handler.GetRecords()
		require.Len(t, records, 2)
		assert.Equal(t, "favorite toggled", records[0].Message)
		assert.True(t, handler.ContainsMessage("save"))
		assert.True(t, handler.ContainsAttr("asset_id", "market_share"))
		assert.False(t, handler.ContainsAttr("asset_id", "other"))
	})

	t.Run("keeps attributes bound with With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "kpi_service")).Warn("kpi not found")

		require.Equal(t, 1, handler.Count())
		AssertLogAttr(t, handler, "component", "kpi_service")
		AssertLogContains(t, handler, slog.LevelWarn, "not found")
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug")
		logger.Info("info")
		logger.Warn("warn")
		logger.Error("error")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Error("one")
		logger.Info("two")
		require.Equal(t, 2, handler.Count())

		handler.Clear()
		assert.Equal(t, 0, handler.Count())
		AssertNoErrors(t, handler)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		handler := NewBufferedSlogHandler(nil)
		logger := slog.New(handler)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				logger.Info("concurrent", slog.Int("n", n))
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, handler.Count())
	})
}

func TestBufferedSlogHandler_Enabled(t *testing.T) {
	handler := NewBufferedSlogHandler(nil)
	assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
}
