package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/navaro-app/navaro-api/internal/audit"
	domain "github.com/navaro-app/navaro-api/internal/domain/queue"
	"github.com/navaro-app/navaro-api/internal/models"
	"github.com/navaro-app/navaro-api/internal/notification"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) HasActiveEntry(ctx context.Context, establishmentID, userID uint) (bool, error) {
	args := m.Called(ctx, establishmentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) MaxWaitingPosition(ctx context.Context, establishmentID uint) (int, error) {
	args := m.Called(ctx, establishmentID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CreateEntry(ctx context.Context, e *models.QueueEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockRepository) GetEntry(ctx context.Context, id uint) (*models.QueueEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QueueEntry), args.Error(1)
}

func (m *MockRepository) GetEntryForUpdate(ctx context.Context, id uint) (*models.QueueEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QueueEntry), args.Error(1)
}

func (m *MockRepository) UpdateEntry(ctx context.Context, e *models.QueueEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockRepository) ShiftPositionsAfter(ctx context.Context, establishmentID uint, removedPosition int) error {
	args := m.Called(ctx, establishmentID, removedPosition)
	return args.Error(0)
}

func (m *MockRepository) ListWaiting(ctx context.Context, establishmentID uint) ([]models.QueueEntry, error) {
	args := m.Called(ctx, establishmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QueueEntry), args.Error(1)
}

type noopNotifier struct{}

func (noopNotifier) Notify(notification.Message) {}

type noopAuditor struct{}

func (noopAuditor) Dispatch(audit.Event) {}

type stubSettings struct{}

func (stubSettings) GetBool(ctx context.Context, key string, def bool) bool { return def }

// --------------------------------------------------
// Join
// --------------------------------------------------

func TestJoinAssignsNextPosition(t *testing.T) {
	repo := new(MockRepository)

	repo.On("HasActiveEntry", mock.Anything, uint(1), uint(7)).Return(false, nil)
	repo.On("MaxWaitingPosition", mock.Anything, uint(1)).Return(4, nil)
	repo.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e *models.QueueEntry) bool {
		return e.Position == 5 && e.Status == string(domain.StatusWaiting)
	})).Return(nil)

	entry, err := NewJoinQueue(repo, noopAuditor{}).Execute(context.Background(), 1, 7)

	assert.NoError(t, err)
	assert.Equal(t, 5, entry.Position)
	repo.AssertExpectations(t)
}

func TestJoinEmptyQueueStartsAtOne(t *testing.T) {
	repo := new(MockRepository)

	repo.On("HasActiveEntry", mock.Anything, uint(1), uint(7)).Return(false, nil)
	repo.On("MaxWaitingPosition", mock.Anything, uint(1)).Return(0, nil)
	repo.On("CreateEntry", mock.Anything, mock.Anything).Return(nil)

	entry, err := NewJoinQueue(repo, noopAuditor{}).Execute(context.Background(), 1, 7)

	assert.NoError(t, err)
	assert.Equal(t, 1, entry.Position)
}

func TestJoinTwiceRejected(t *testing.T) {
	repo := new(MockRepository)

	repo.On("HasActiveEntry", mock.Anything, uint(1), uint(7)).Return(true, nil)

	_, err := NewJoinQueue(repo, noopAuditor{}).Execute(context.Background(), 1, 7)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything)
}

// --------------------------------------------------
// Transições
// --------------------------------------------------

func TestServingToCompletedReorders(t *testing.T) {
	repo := new(MockRepository)

	entry := &models.QueueEntry{
		ID:              30,
		EstablishmentID: 1,
		UserID:          7,
		Position:        2,
		Status:          string(domain.StatusServing),
	}

	repo.On("GetEntryForUpdate", mock.Anything, uint(30)).Return(entry, nil)
	repo.On("UpdateEntry", mock.Anything, entry).Return(nil)
	repo.On("ShiftPositionsAfter", mock.Anything, uint(1), 2).Return(nil)

	out, err := NewUpdateQueueStatus(repo, stubSettings{}, noopNotifier{}, noopAuditor{}).
		Execute(context.Background(), UpdateStatusInput{
			EstablishmentID: 1,
			ActorID:         2,
			EntryID:         30,
			Status:          "completed",
		})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), out.Status)
	assert.Equal(t, 0, out.Position)
	assert.NotNil(t, out.FinishedAt)
	repo.AssertExpectations(t)
}

func TestWaitingToServingIsStateError(t *testing.T) {
	repo := new(MockRepository)

	entry := &models.QueueEntry{
		ID:              31,
		EstablishmentID: 1,
		Position:        1,
		Status:          string(domain.StatusWaiting),
	}

	repo.On("GetEntryForUpdate", mock.Anything, uint(31)).Return(entry, nil)

	_, err := NewUpdateQueueStatus(repo, stubSettings{}, noopNotifier{}, noopAuditor{}).
		Execute(context.Background(), UpdateStatusInput{
			EstablishmentID: 1,
			EntryID:         31,
			Status:          "serving",
		})

	stateErr, ok := err.(*domain.StateError)
	if assert.True(t, ok) {
		assert.Equal(t, domain.StatusWaiting, stateErr.From)
		assert.Equal(t, domain.StatusServing, stateErr.To)
	}
	repo.AssertNotCalled(t, "UpdateEntry", mock.Anything, mock.Anything)
}

func TestCallStampsCalledAt(t *testing.T) {
	repo := new(MockRepository)

	entry := &models.QueueEntry{
		ID:              32,
		EstablishmentID: 1,
		UserID:          7,
		Position:        1,
		Status:          string(domain.StatusWaiting),
	}

	repo.On("GetEntryForUpdate", mock.Anything, uint(32)).Return(entry, nil)
	repo.On("UpdateEntry", mock.Anything, entry).Return(nil)

	out, err := NewUpdateQueueStatus(repo, stubSettings{}, noopNotifier{}, noopAuditor{}).
		Execute(context.Background(), UpdateStatusInput{
			EstablishmentID: 1,
			EntryID:         32,
			Status:          "called",
		})

	assert.NoError(t, err)
	assert.NotNil(t, out.CalledAt)
	// chamado mantém a posição até concluir ou sair
	assert.Equal(t, 1, out.Position)
	repo.AssertNotCalled(t, "ShiftPositionsAfter", mock.Anything, mock.Anything, mock.Anything)
}

// --------------------------------------------------
// Saída
// --------------------------------------------------

func TestLeaveReordersBehind(t *testing.T) {
	repo := new(MockRepository)

	entry := &models.QueueEntry{
		ID:              33,
		EstablishmentID: 1,
		UserID:          7,
		Position:        2,
		Status:          string(domain.StatusWaiting),
	}

	repo.On("GetEntryForUpdate", mock.Anything, uint(33)).Return(entry, nil)
	repo.On("UpdateEntry", mock.Anything, entry).Return(nil)
	repo.On("ShiftPositionsAfter", mock.Anything, uint(1), 2).Return(nil)

	out, err := NewLeaveQueue(repo, noopAuditor{}).Execute(context.Background(), LeaveQueueInput{
		EntryID: 33,
		ActorID: 7,
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusLeft), out.Status)
	assert.Equal(t, 0, out.Position)
	repo.AssertExpectations(t)
}

func TestLeaveSomeoneElsesEntry(t *testing.T) {
	repo := new(MockRepository)

	entry := &models.QueueEntry{
		ID:              34,
		EstablishmentID: 1,
		UserID:          7,
		Position:        1,
		Status:          string(domain.StatusWaiting),
	}

	repo.On("GetEntryForUpdate", mock.Anything, uint(34)).Return(entry, nil)

	_, err := NewLeaveQueue(repo, noopAuditor{}).Execute(context.Background(), LeaveQueueInput{
		EntryID: 34,
		ActorID: 99,
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateEntry", mock.Anything, mock.Anything)
}
