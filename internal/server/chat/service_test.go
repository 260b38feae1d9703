package chat

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	s := NewService(NewMemoryRepository())
	base := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	var tick int
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s
}

func TestService_SendAddsAutoReply(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	sent, err := s.Send(ctx, "u1", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, models.SenderUser, sent.SenderType)
	assert.Nil(t, sent.DoubtID)

	msgs, err := s.Messages(ctx, "u1", "", 50)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, sent.ID, msgs[0].ID)
	assert.Equal(t, models.SenderTutor, msgs[1].SenderType)
	assert.Equal(t, common.ChatAutoReply, msgs[1].Message)
}

func TestService_SendRejectsBlank(t *testing.T) {
	_, err := newTestService().Send(context.Background(), "u1", "  ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestService_MessagesFilterAndLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	q1 := "q1"
	empty := ""

	_, err := s.Send(ctx, "u1", "general", &empty)
	require.NoError(t, err)
	_, err = s.Send(ctx, "u1", "about q1", &q1)
	require.NoError(t, err)
	_, err = s.Send(ctx, "u2", "someone else", &q1)
	require.NoError(t, err)

	scoped, err := s.Messages(ctx, "u1", "q1", 50)
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, "about q1", scoped[0].Message)

	all, err := s.Messages(ctx, "u1", "", 50)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Nil(t, all[0].DoubtID)

	last, err := s.Messages(ctx, "u1", "", 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, common.ChatAutoReply, last[0].Message)
	require.NotNil(t, last[0].DoubtID)
	assert.Equal(t, "q1", *last[0].DoubtID)
}
