package session

import (
	"sync"

	"pension-report/internal/model"
)

// Store keeps the latest prediction result per user.
type Store struct {
	results sync.Map
}

func NewStore() *Store {
	return &Store{}
}

// Put replaces the user's slot. Error results are stored too so callers can
// tell "failed" apart from "never asked".
func (s *Store) Put(userID string, result *model.PredictionResult) {
	s.results.Store(userID, result)
}

func (s *Store) Get(userID string) (*model.PredictionResult, bool) {
	v, ok := s.results.Load(userID)
	if !ok {
		return nil, false
	}
	return v.(*model.PredictionResult), true
}

func (s *Store) Clear(userID string) {
	s.results.Delete(userID)
}
