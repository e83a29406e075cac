package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pension-report/internal/model"
)

func TestStorePutGet(t *testing.T) {
	s := NewStore()

	_, ok := s.Get("user_001")
	assert.False(t, ok)

	s.Put("user_001", &model.PredictionResult{Error: "timeout"})
	got, ok := s.Get("user_001")
	require.True(t, ok)
	assert.False(t, got.HasEstimate())

	s.Put("user_001", &model.PredictionResult{Estimate: &model.PredictionEstimate{EstimatedMonthlyPension: 10}})
	got, _ = s.Get("user_001")
	assert.True(t, got.HasEstimate())

	s.Clear("user_001")
	_, ok = s.Get("user_001")
	assert.False(t, ok)
}

func TestStoreConcurrentUsers(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("user_%d", i)
			s.Put(id, &model.PredictionResult{Estimate: &model.PredictionEstimate{EstimatedMonthlyPension: float64(i)}})
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		got, ok := s.Get(fmt.Sprintf("user_%d", i))
		require.True(t, ok)
		assert.Equal(t, float64(i), got.Estimate.EstimatedMonthlyPension)
	}
}
