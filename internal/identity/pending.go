package identity

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-guard/models"
)

// Flow is a federated sign-in started by /start and not yet completed.
type Flow struct {
	Provider models.Provider
	Mode     string
	Nonce    string
	Callback string
	expires  time.Time
}

type pendingResult struct {
	response models.AuthResponse
	expires  time.Time
}

// PendingStore keeps started flows keyed by oauth state and finished
// redirect results keyed by the client nonce. Both are single-use and expire
// after ttl.
type PendingStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	flows   map[string]Flow
	results map[string]pendingResult
}

func NewPendingStore(ttl time.Duration) *PendingStore {
	return &PendingStore{
		ttl:     ttl,
		now:     time.Now,
		flows:   make(map[string]Flow),
		results: make(map[string]pendingResult),
	}
}

func (s *PendingStore) BeginFlow(state string, flow Flow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow.expires = s.now().Add(s.ttl)
	s.flows[state] = flow
}

// TakeFlow removes and returns the flow started with state.
func (s *PendingStore) TakeFlow(state string) (Flow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[state]
	if !ok {
		return Flow{}, false
	}
	delete(s.flows, state)

	if !s.now().Before(flow.expires) {
		return Flow{}, false
	}
	return flow, true
}

func (s *PendingStore) PutResult(nonce string, resp models.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[nonce] = pendingResult{response: resp, expires: s.now().Add(s.ttl)}
}

// TakeResult removes and returns the result stored under nonce.
func (s *PendingStore) TakeResult(nonce string) (models.AuthResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.results[nonce]
	if !ok {
		return models.AuthResponse{}, false
	}
	delete(s.results, nonce)

	if !s.now().Before(res.expires) {
		return models.AuthResponse{}, false
	}
	return res.response, true
}

// Evict drops every expired flow and result and returns how many were removed.
func (s *PendingStore) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for state, flow := range s.flows {
		if !now.Before(flow.expires) {
			delete(s.flows, state)
			removed++
		}
	}
	for nonce, res := range s.results {
		if !now.Before(res.expires) {
			delete(s.results, nonce)
			removed++
		}
	}

	return removed
}
