package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/radieske/analysis-relay/internal/relay/analysis"
)

func newTestStore(t *testing.T, max int) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "history.json"), max, zaptest.NewLogger(t))
}

func record(i int, value string) analysis.Record {
	return analysis.Record{
		ID:         fmt.Sprintf("rec-%03d", i),
		Match:      fmt.Sprintf("Match %d", i),
		League:     "NBA",
		Value:      value,
		Origin:     analysis.OriginAutomation,
		ReceivedAt: time.Date(2026, 10, 15, 12, 0, i, 0, time.UTC),
	}
}

func TestAppend_ReadInInsertionOrder(t *testing.T) {
	s := newTestStore(t, 100)

	for i := 1; i <= 10; i++ {
		total, err := s.Append(record(i, "NO"))
		require.NoError(t, err)
		assert.Equal(t, i, total)
	}

	entries, total := s.Read(0)
	assert.Equal(t, 10, total)
	require.Len(t, entries, 10)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("rec-%03d", i+1), e.ID)
	}
}

func TestAppend_FIFOEvictionAtCap(t *testing.T) {
	s := newTestStore(t, 100)

	for i := 1; i <= 105; i++ {
		_, err := s.Append(record(i, "NO"))
		require.NoError(t, err)
	}

	entries, total := s.Read(0)
	assert.Equal(t, 100, total)
	require.Len(t, entries, 100)
	assert.Equal(t, "rec-006", entries[0].ID)
	assert.Equal(t, "rec-105", entries[99].ID)
	for _, e := range entries {
		assert.NotEqual(t, "rec-001", e.ID)
	}
}

func TestRead_Limit(t *testing.T) {
	s := newTestStore(t, 100)
	for i := 1; i <= 5; i++ {
		_, _ = s.Append(record(i, "NO"))
	}

	entries, total := s.Read(2)
	assert.Equal(t, 5, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "rec-004", entries[0].ID)
	assert.Equal(t, "rec-005", entries[1].ID)

	entries, _ = s.Read(50)
	assert.Len(t, entries, 5)
}

func TestAppend_VisibleImmediately(t *testing.T) {
	s := newTestStore(t, 100)

	_, err := s.Append(record(1, "YES"))
	require.NoError(t, err)

	entries, total := s.Read(1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "rec-001", entries[0].ID)
}

func TestRead_MissingFile(t *testing.T) {
	s := newTestStore(t, 100)

	entries, total := s.Read(10)
	assert.Empty(t, entries)
	assert.Zero(t, total)

	sum := s.Summarize()
	assert.Zero(t, sum.Total)
	assert.Equal(t, "0.0", sum.ValuePercent)
	assert.Nil(t, sum.Last)
}

func TestRead_CorruptFile(t *testing.T) {
	s := newTestStore(t, 100)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	entries, total := s.Read(10)
	assert.Empty(t, entries)
	assert.Zero(t, total)
	assert.Zero(t, s.Summarize().Total)

	// um append sobre arquivo corrompido recomeça do zero
	total, err := s.Append(record(1, "NO"))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestAppend_WriteFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	// o caminho do arquivo é um diretório: a gravação falha
	path := filepath.Join(dir, "history.json")
	require.NoError(t, os.Mkdir(path, 0o755))

	s := New(path, 100, zaptest.NewLogger(t))
	total, err := s.Append(record(1, "NO"))

	assert.Error(t, err)
	assert.Equal(t, 1, total)
}

func TestReset(t *testing.T) {
	s := newTestStore(t, 100)
	for i := 1; i <= 3; i++ {
		_, _ = s.Append(record(i, "NO"))
	}

	require.NoError(t, s.Reset())

	_, total := s.Read(0)
	assert.Zero(t, total)
}

func TestSummarize(t *testing.T) {
	s := newTestStore(t, 100)
	_, _ = s.Append(record(1, "YES"))
	_, _ = s.Append(record(2, "NO"))
	_, _ = s.Append(record(3, "POSSIBLE"))

	sum := s.Summarize()
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.WithValue)
	assert.Equal(t, "33.3", sum.ValuePercent)
	require.NotNil(t, sum.Last)
	assert.Equal(t, "rec-003", sum.Last.ID)
}

func TestStats_Breakdown(t *testing.T) {
	s := newTestStore(t, 100)
	for i := 1; i <= 7; i++ {
		rec := record(i, "YES")
		if i%2 == 0 {
			rec.League = "EuroLeague"
			rec.Origin = analysis.OriginManual
		}
		_, _ = s.Append(rec)
	}

	st := s.Stats()
	assert.Equal(t, 7, st.Total)
	assert.Equal(t, "100.0", st.ValuePercent)
	assert.Equal(t, map[string]int{"NBA": 4, "EuroLeague": 3}, st.ByLeague)
	assert.Equal(t, map[string]int{analysis.OriginAutomation: 4, analysis.OriginManual: 3}, st.ByOrigin)
	require.Len(t, st.RecentRecommendations, 5)
	assert.Equal(t, "Match 7", st.RecentRecommendations[0].Match)
}

func TestAppend_ConcurrentDoesNotLoseUpdates(t *testing.T) {
	s := newTestStore(t, 200)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Append(record(i, "NO"))
		}(i)
	}
	wg.Wait()

	_, total := s.Read(0)
	assert.Equal(t, 50, total)
}
