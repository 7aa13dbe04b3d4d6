package stripekit

import "sync"

type testStore struct {
	mu     sync.Mutex
	calls  []*Call
	events map[string]*Delivery
	err    error
}

var _ Store = (*testStore)(nil)

func newTestStore() *testStore {
	return &testStore{
		calls:  make([]*Call, 0),
		events: make(map[string]*Delivery),
	}
}

func (s *testStore) LogRequest(c *Call) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, c)
	return nil
}

func (s *testStore) LogDelivery(d *Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	if _, ok := s.events[d.ID]; ok {
		return ErrEventExists
	}
	s.events[d.ID] = d
	return nil
}
