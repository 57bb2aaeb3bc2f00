package stats

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewStorage(tempDir)
	require.NoError(t, err)
	defer storage.Shutdown()

	t.Run("Record", func(t *testing.T) {
		storage.Record(EventContentAnalysis)
		storage.Record(EventAudit)
		storage.Add(EventRequest, 3)
		storage.Record(EventRequestError)
		storage.RecordLinkCache(true)
		storage.RecordLinkCache(false)
		storage.RecordLinkCache(false)

		stats := storage.GetCurrentStats()
		assert.Equal(t, 1, stats.ContentAnalyses)
		assert.Equal(t, 1, stats.Audits)
		assert.Equal(t, 3, stats.Requests)
		assert.Equal(t, 1, stats.RequestErrors)
		assert.Equal(t, 1, stats.LinkCacheHits)
		assert.Equal(t, 2, stats.LinkCacheMisses)
		assert.InDelta(t, 33.33, stats.ErrorRate(), 0.01)
		assert.False(t, stats.LastUpdated.IsZero())
	})

	t.Run("Persistence", func(t *testing.T) {
		require.NoError(t, storage.save())

		storage2, err := NewStorage(tempDir)
		require.NoError(t, err)
		defer storage2.Shutdown()

		stats := storage2.GetCurrentStats()
		assert.Equal(t, 1, stats.ContentAnalyses)
		assert.Equal(t, 3, stats.Requests)
	})

	t.Run("FileSize", func(t *testing.T) {
		require.NoError(t, storage.save())

		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		require.NoError(t, err)
		assert.Less(t, info.Size(), int64(1024))

		_, err = os.Stat(filepath.Join(tempDir, "stats.json.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					storage.Record(EventSwotRules)
					storage.RecordLinkCache(true)
					storage.GetCurrentStats()
				}
			}()
		}
		wg.Wait()

		stats := storage.GetCurrentStats()
		assert.Equal(t, before.SwotRules+1000, stats.SwotRules)
		assert.Equal(t, before.LinkCacheHits+1000, stats.LinkCacheHits)
	})
}

func TestCleanup(t *testing.T) {
	now := time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC)
	storage, err := NewStorage(t.TempDir(), WithClock(fixedClock(now)))
	require.NoError(t, err)
	defer storage.Shutdown()

	for _, month := range []string{"2026-03", "2026-02", "2026-01", "2025-12"} {
		storage.stats[month] = &MonthlyStats{Audits: 1}
	}

	assert.Equal(t, 2, storage.Cleanup(1))
	assert.Equal(t, []string{"2026-03", "2026-02"}, storage.GetAllMonths())

	assert.Equal(t, 1, storage.Cleanup(0))
	assert.Equal(t, []string{"2026-03"}, storage.GetAllMonths())
}

func TestTrackURL(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	defer storage.Shutdown()

	storage.TrackURL("https://example.com/")
	storage.TrackURL("https://example.com?utm=1")
	storage.TrackURL("https://shop.example.com/boots/")
	storage.TrackURL("http://localhost:8082/page")
	storage.TrackURL("https://example.com/api/v1")
	storage.TrackURL("not a url")

	stats := storage.GetCurrentStats()
	assert.Equal(t, []URLCount{
		{URL: "https://example.com", Count: 2},
		{URL: "https://shop.example.com/boots", Count: 1},
	}, stats.TopURLs(5))
	assert.Len(t, stats.TopURLs(1), 1)

	// returned stats are a copy
	stats.PopularURLs["https://example.com"] = 99
	assert.Equal(t, 2, storage.GetCurrentStats().PopularURLs["https://example.com"])
}

func TestGetMonthlyStats(t *testing.T) {
	now := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	storage, err := NewStorage(t.TempDir(), WithClock(fixedClock(now)))
	require.NoError(t, err)
	defer storage.Shutdown()

	storage.Record(EventRegeneration)

	stats, ok := storage.GetMonthlyStats("2026-10")
	require.True(t, ok)
	assert.Equal(t, 1, stats.Regenerations)

	_, ok = storage.GetMonthlyStats("2020-01")
	assert.False(t, ok)
}

func TestShutdownFlushes(t *testing.T) {
	tempDir := t.TempDir()
	storage, err := NewStorage(tempDir, WithFlushInterval(time.Hour))
	require.NoError(t, err)

	storage.Record(EventTechnicalScore)
	require.NoError(t, storage.Shutdown())
	require.NoError(t, storage.Shutdown())

	reloaded, err := NewStorage(tempDir)
	require.NoError(t, err)
	defer reloaded.Shutdown()
	assert.Equal(t, 1, reloaded.GetCurrentStats().TechnicalScores)
}

func TestNewStorage_CorruptFile(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "stats.json"), []byte("{broken"), 0644))

	_, err := NewStorage(tempDir)
	assert.Error(t, err)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "swot_ai", EventSwotAI.String())
	assert.Equal(t, "unknown", Event(0).String())
}
