package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/navaro-app/navaro-api/internal/models"
)

func TestCanTransition(t *testing.T) {
	assert.NoError(t, CanTransition(StatusWaiting, StatusCalled))
	assert.NoError(t, CanTransition(StatusCalled, StatusServing))
	assert.NoError(t, CanTransition(StatusServing, StatusCompleted))

	// sair da fila vale em qualquer estado ativo
	assert.NoError(t, CanTransition(StatusWaiting, StatusLeft))
	assert.NoError(t, CanTransition(StatusCalled, StatusLeft))
	assert.NoError(t, CanTransition(StatusServing, StatusLeft))

	// pulos e regressões são ilegais
	assert.Error(t, CanTransition(StatusWaiting, StatusServing))
	assert.Error(t, CanTransition(StatusWaiting, StatusCompleted))
	assert.Error(t, CanTransition(StatusCalled, StatusWaiting))
	assert.Error(t, CanTransition(StatusCompleted, StatusWaiting))
	assert.Error(t, CanTransition(StatusLeft, StatusCalled))
}

func TestIsActive(t *testing.T) {
	assert.True(t, StatusWaiting.IsActive())
	assert.True(t, StatusCalled.IsActive())
	assert.True(t, StatusServing.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusLeft.IsActive())
}

func TestFinishClearsPosition(t *testing.T) {
	now := time.Now()
	e := &models.QueueEntry{Status: string(StatusServing), Position: 3}

	assert.NoError(t, Finish(e, now))
	assert.Equal(t, string(StatusCompleted), e.Status)
	assert.Equal(t, 0, e.Position)
	assert.NotNil(t, e.FinishedAt)
}

func TestLeaveFromWaiting(t *testing.T) {
	now := time.Now()
	e := &models.QueueEntry{Status: string(StatusWaiting), Position: 2}

	assert.NoError(t, Leave(e, now))
	assert.Equal(t, string(StatusLeft), e.Status)
	assert.Equal(t, 0, e.Position)
}

func TestCallStampsTimestamp(t *testing.T) {
	now := time.Now()
	e := &models.QueueEntry{Status: string(StatusWaiting), Position: 1}

	assert.NoError(t, Call(e, now))
	assert.NotNil(t, e.CalledAt)
	assert.Equal(t, now, *e.CalledAt)

	// repetir a chamada é no-op permitido
	assert.NoError(t, CanTransition(Status(e.Status), StatusCalled))
}
