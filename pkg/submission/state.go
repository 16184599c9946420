package submission

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formsubmit/pkg/transport"
)

// Result is the success payload of a settled submission. Data holds the
// JSON-decoded body when the collaborator declared JSON, otherwise the raw
// text; Raw always keeps the undecoded bytes.
type Result struct {
	StatusCode int
	Data       any
	Raw        []byte
}

// State is the externally observable submission lifecycle snapshot. At most
// one of Err and Success is set once a chain settles; both are clear while
// idle or loading. Last write wins across concurrent chains.
type State struct {
	Loading bool
	Err     *Error
	Data    *Result
	Success bool
}

// stateStore owns the lifecycle state and its observers. Mutations happen
// only through set, which notifies subscribers synchronously in registration
// order.
type stateStore struct {
	mu          sync.RWMutex
	current     State
	subscribers map[int]func(State)
	nextID      int
}

func newStateStore() *stateStore {
	return &stateStore{subscribers: make(map[int]func(State))}
}

func (s *stateStore) get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *stateStore) set(next State) {
	s.mu.Lock()
	s.current = next
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	observers := make([]func(State), 0, len(ids))
	for _, id := range ids {
		observers = append(observers, s.subscribers[id])
	}
	s.mu.Unlock()

	for _, observe := range observers {
		observe(next)
	}
}

func (s *stateStore) subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// parseResult decodes a 2xx response body by declared content type.
// Undecodable JSON degrades to the raw text rather than failing the chain.
func parseResult(resp *transport.Response) *Result {
	result := &Result{StatusCode: resp.StatusCode, Raw: resp.Body}
	if len(resp.Body) == 0 {
		return result
	}
	if strings.Contains(resp.ContentType(), "application/json") {
		var decoded any
		if err := json.Unmarshal(resp.Body, &decoded); err == nil {
			result.Data = decoded
			return result
		}
	}
	result.Data = string(resp.Body)
	return result
}
