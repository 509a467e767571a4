package memory

import (
	"context"
	"sync"

	"github.com/dotgrid/dotsboxes-go/internal/model"
	"github.com/dotgrid/dotsboxes-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Conditional updates are a version compare under the write lock;
// subscribers receive a deep copy of the match on every write.
type Storage struct {
	mu sync.RWMutex

	matches     map[model.MatchID]*model.Match
	subscribers map[model.MatchID]map[int]chan *model.Match
	nextSubID   int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		matches:     make(map[model.MatchID]*model.Match),
		subscribers: make(map[model.MatchID]map[int]chan *model.Match),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateMatch(ctx context.Context, m *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := m.Clone()
	stored.Version = 1
	s.matches[m.ID] = stored
	m.Version = stored.Version

	s.notifyLocked(stored)
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return m.Clone(), nil
}

func (s *Storage) UpdateMatch(ctx context.Context, m *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.matches[m.ID]
	if !ok {
		return model.ErrMatchNotFound
	}
	if current.Version != m.Version {
		return model.ErrWriteConflict
	}

	stored := m.Clone()
	stored.Version = current.Version + 1
	s.matches[m.ID] = stored
	m.Version = stored.Version

	s.notifyLocked(stored)
	return nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

func (s *Storage) ListOpenMatches(ctx context.Context) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	open := make([]*model.Match, 0)
	for _, m := range s.matches {
		if m.Status == model.StatusWaiting && m.Settings.Public {
			open = append(open, m.Clone())
		}
	}
	return open, nil
}

func (s *Storage) ListActiveMatchIDs(ctx context.Context) ([]model.MatchID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]model.MatchID, 0)
	for id, m := range s.matches {
		if m.Status == model.StatusActive {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *Storage) SubscribeMatch(ctx context.Context, id model.MatchID) (<-chan *model.Match, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan *model.Match, 16)
	subID := s.nextSubID
	s.nextSubID++

	if s.subscribers[id] == nil {
		s.subscribers[id] = make(map[int]chan *model.Match)
	}
	s.subscribers[id][subID] = ch

	var once sync.Once
	stop := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if subs, ok := s.subscribers[id]; ok {
				if sub, ok := subs[subID]; ok {
					delete(subs, subID)
					close(sub)
				}
				if len(subs) == 0 {
					delete(s.subscribers, id)
				}
			}
		})
	}

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			stop()
		}()
	}

	return ch, stop, nil
}

// notifyLocked fans a match update out to subscribers. Slow consumers
// drop updates rather than block the writer; delivery is at-least-once
// overall since the caller can always re-read.
func (s *Storage) notifyLocked(m *model.Match) {
	for _, ch := range s.subscribers[m.ID] {
		select {
		case ch <- m.Clone():
		default:
		}
	}
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, subs := range s.subscribers {
		for subID, ch := range subs {
			close(ch)
			delete(subs, subID)
		}
		delete(s.subscribers, id)
	}
	return nil
}
