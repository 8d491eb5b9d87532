package bot

import "sync"

// convState is a short-lived conversational state: the bot has asked a
// question and the next free-text message from the user answers it.
type convState int

const (
	stateNone convState = iota
	// stateAwaitingIngredient: user chose "custom ingredient" and the next
	// message is the search term.
	stateAwaitingIngredient
	// stateAwaitingBanID / stateAwaitingUnbanID: an admin was prompted for
	// a numeric user id.
	stateAwaitingBanID
	stateAwaitingUnbanID
)

// stateStore keeps per-user conversation states in process memory. States
// live for seconds and guide a single prompt/answer exchange; they are not
// durable data and are dropped on restart.
type stateStore struct {
	mu sync.Mutex
	m  map[int64]convState
}

func newStateStore() *stateStore {
	return &stateStore{m: make(map[int64]convState)}
}

// Set records the state for userID, replacing any previous one.
func (s *stateStore) Set(userID int64, st convState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[userID] = st
}

// Get returns the current state for userID, stateNone when unset.
func (s *stateStore) Get(userID int64) convState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[userID]
}

// Clear drops any state for userID.
func (s *stateStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}
