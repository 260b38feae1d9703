package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
	"github.com/dmitrijs2005/doubtsolver/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSend(t *testing.T) {
	fc := &fakeClient{}
	svc := NewChatService(fc, authed, nil)

	msg, err := svc.Send(context.Background(), "  help me  ", " q1 ")
	require.NoError(t, err)
	assert.Equal(t, "help me", fc.lastMessage)
	assert.Equal(t, "q1", fc.lastDoubtID)
	assert.Equal(t, "m1", msg.ID)
}

func TestChatSend_EmptyRejected(t *testing.T) {
	fc := &fakeClient{}
	svc := NewChatService(fc, authed, nil)

	_, err := svc.Send(context.Background(), "   ", "")
	require.ErrorIs(t, err, models.ErrValidation)
	require.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, fc.calls)
}

func TestChatSend_RequiresSession(t *testing.T) {
	svc := NewChatService(&fakeClient{}, fakeCreds{}, nil)
	_, err := svc.Send(context.Background(), "hi", "")
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestChatMessages_DefaultLimit(t *testing.T) {
	fc := &fakeClient{}
	svc := NewChatService(fc, authed, nil)

	msgs, err := svc.Messages(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.Equal(t, DefaultChatLimit, fc.lastLimit)
}

func TestChatMessages_Error(t *testing.T) {
	fc := &fakeClient{err: errBoom}
	svc := NewChatService(fc, authed, nil)

	_, err := svc.Messages(context.Background(), "q1", 5)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, "q1", fc.lastDoubtID)
	assert.Equal(t, 5, fc.lastLimit)
}
