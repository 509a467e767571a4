package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dotgrid/dotsboxes-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	s.storage.Close()
}

func (s *StorageSuite) newMatch(id model.MatchID, status model.MatchStatus, public bool) *model.Match {
	return &model.Match{
		ID:     id,
		Status: status,
		Settings: model.Settings{
			GridSize:     3,
			Public:       public,
			TurnDuration: 30 * time.Second,
		},
		Player1:     &model.Participant{ID: "alice", Name: "Alice"},
		Lines:       []model.Line{},
		Cells:       []model.CellState{},
		Scores:      map[model.PlayerSlot]int{model.Slot1: 0, model.Slot2: 0},
		CurrentTurn: model.Slot1,
		TurnHistory: []model.TurnRecord{},
		MissedTurns: map[model.PlayerSlot]int{model.Slot1: 0, model.Slot2: 0},
	}
}

func (s *StorageSuite) TestCreateAndGet() {
	m := s.newMatch("match-1", model.StatusWaiting, true)

	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))
	s.Equal(int64(1), m.Version)

	got, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(m, got)
}

func (s *StorageSuite) TestGetReturnsIsolatedCopy() {
	m := s.newMatch("match-1", model.StatusWaiting, true)
	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))

	got, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	got.Status = model.StatusCancelled
	got.Scores[model.Slot1] = 99

	fresh, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(model.StatusWaiting, fresh.Status)
	s.Equal(0, fresh.Scores[model.Slot1])
}

func (s *StorageSuite) TestGetNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "nope")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestUpdateBumpsVersion() {
	m := s.newMatch("match-1", model.StatusWaiting, true)
	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))

	m.Status = model.StatusActive
	s.Require().NoError(s.storage.UpdateMatch(s.ctx, m))
	s.Equal(int64(2), m.Version)

	got, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(model.StatusActive, got.Status)
	s.Equal(int64(2), got.Version)
}

func (s *StorageSuite) TestUpdateStaleVersionConflicts() {
	m := s.newMatch("match-1", model.StatusWaiting, true)
	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))

	first, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	second, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)

	first.Status = model.StatusActive
	s.Require().NoError(s.storage.UpdateMatch(s.ctx, first))

	second.Status = model.StatusCancelled
	s.ErrorIs(s.storage.UpdateMatch(s.ctx, second), model.ErrWriteConflict)

	got, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(model.StatusActive, got.Status)
}

func (s *StorageSuite) TestUpdateUnknownMatch() {
	m := s.newMatch("nope", model.StatusWaiting, true)
	s.ErrorIs(s.storage.UpdateMatch(s.ctx, m), model.ErrMatchNotFound)
}

func (s *StorageSuite) TestDelete() {
	m := s.newMatch("match-1", model.StatusWaiting, true)
	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))

	s.Require().NoError(s.storage.DeleteMatch(s.ctx, "match-1"))

	_, err := s.storage.GetMatch(s.ctx, "match-1")
	s.ErrorIs(err, model.ErrMatchNotFound)

	s.Require().NoError(s.storage.DeleteMatch(s.ctx, "match-1"))
}

func (s *StorageSuite) TestListOpenMatches() {
	s.Require().NoError(s.storage.CreateMatch(s.ctx, s.newMatch("open", model.StatusWaiting, true)))
	s.Require().NoError(s.storage.CreateMatch(s.ctx, s.newMatch("private", model.StatusWaiting, false)))
	s.Require().NoError(s.storage.CreateMatch(s.ctx, s.newMatch("running", model.StatusActive, true)))

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(open, 1)
	s.Equal(model.MatchID("open"), open[0].ID)
}

func (s *StorageSuite) TestListActiveMatchIDs() {
	s.Require().NoError(s.storage.CreateMatch(s.ctx, s.newMatch("a", model.StatusActive, true)))
	s.Require().NoError(s.storage.CreateMatch(s.ctx, s.newMatch("b", model.StatusActive, false)))
	s.Require().NoError(s.storage.CreateMatch(s.ctx, s.newMatch("waiting", model.StatusWaiting, true)))
	s.Require().NoError(s.storage.CreateMatch(s.ctx, s.newMatch("done", model.StatusCompleted, true)))

	ids, err := s.storage.ListActiveMatchIDs(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.MatchID{"a", "b"}, ids)
}

func (s *StorageSuite) TestSubscribeReceivesUpdates() {
	m := s.newMatch("match-1", model.StatusWaiting, true)
	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))

	ch, stop, err := s.storage.SubscribeMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	defer stop()

	m.Status = model.StatusActive
	s.Require().NoError(s.storage.UpdateMatch(s.ctx, m))

	select {
	case update := <-ch:
		s.Equal(model.StatusActive, update.Status)
		s.Equal(int64(2), update.Version)
	case <-time.After(time.Second):
		s.FailNow("no update received")
	}
}

func (s *StorageSuite) TestStopClosesSubscription() {
	m := s.newMatch("match-1", model.StatusWaiting, true)
	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))

	ch, stop, err := s.storage.SubscribeMatch(s.ctx, "match-1")
	s.Require().NoError(err)

	stop()
	stop() // idempotent

	_, ok := <-ch
	s.False(ok)
}

func (s *StorageSuite) TestContextCancelStopsSubscription() {
	m := s.newMatch("match-1", model.StatusWaiting, true)
	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))

	ctx, cancel := context.WithCancel(s.ctx)
	ch, stop, err := s.storage.SubscribeMatch(ctx, "match-1")
	s.Require().NoError(err)
	defer stop()

	cancel()

	select {
	case _, ok := <-ch:
		s.False(ok)
	case <-time.After(time.Second):
		s.FailNow("subscription not closed on context cancel")
	}
}

func (s *StorageSuite) TestSlowSubscriberDoesNotBlockWrites() {
	m := s.newMatch("match-1", model.StatusWaiting, true)
	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))

	_, stop, err := s.storage.SubscribeMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	defer stop()

	// Overflow the subscriber buffer; writes must keep succeeding
	for i := 0; i < 50; i++ {
		m.Scores[model.Slot1] = i
		s.Require().NoError(s.storage.UpdateMatch(s.ctx, m))
	}
}

func (s *StorageSuite) TestCloseClosesAllSubscriptions() {
	m := s.newMatch("match-1", model.StatusWaiting, true)
	s.Require().NoError(s.storage.CreateMatch(s.ctx, m))

	ch1, _, err := s.storage.SubscribeMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	ch2, _, err := s.storage.SubscribeMatch(s.ctx, "match-1")
	s.Require().NoError(err)

	s.Require().NoError(s.storage.Close())

	_, ok := <-ch1
	s.False(ok)
	_, ok = <-ch2
	s.False(ok)
}
