package models

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCreatedAtIsStrictlyIncreasing(t *testing.T) {
	const n = 1000
	got := make([]time.Time, n)
	for i := range got {
		got[i] = nextCreatedAt()
	}
	for i := 1; i < n; i++ {
		require.True(t, got[i].After(got[i-1]), "index %d", i)
		assert.Equal(t, got[i], got[i].Truncate(time.Microsecond), "fits datetime(6)")
	}
}

func TestNextCreatedAtConcurrent(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = make(map[time.Time]bool)
		wg   sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ts := nextCreatedAt()
				mu.Lock()
				seen[ts] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 800, "no two records share a timestamp")
}

func TestBeforeCreateKeepsExplicitValues(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m := BaseModel{ID: "fixed", CreatedAt: at}
	require.NoError(t, m.BeforeCreate(nil))
	assert.Equal(t, "fixed", m.ID)
	assert.Equal(t, at, m.CreatedAt)

	var fresh BaseModel
	require.NoError(t, fresh.BeforeCreate(nil))
	assert.NotEmpty(t, fresh.ID)
	assert.False(t, fresh.CreatedAt.IsZero())
}
