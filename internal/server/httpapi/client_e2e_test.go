package httpapi_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/client/api"
	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
	"github.com/dmitrijs2005/doubtsolver/internal/server/chat"
	"github.com/dmitrijs2005/doubtsolver/internal/server/doubts"
	"github.com/dmitrijs2005/doubtsolver/internal/server/httpapi"
	"github.com/dmitrijs2005/doubtsolver/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startBackend(t *testing.T) *api.HTTPClient {
	t.Helper()
	l := logging.Discard()
	srv := httpapi.NewServer(":0", l,
		users.NewService(users.NewMemoryRepository(), "e2e", time.Hour),
		doubts.NewService(doubts.NewMemoryRepository(), doubts.NewTemplateAnswerer(), l),
		chat.NewService(chat.NewMemoryRepository()),
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := api.NewHTTPClient(ts.URL, ts.Client(), l)
	require.NoError(t, err)
	return c
}

func TestHTTPClientAgainstBackend(t *testing.T) {
	ctx := context.Background()
	c := startBackend(t)

	require.NoError(t, c.Health(ctx))

	reg, err := c.Register(ctx, "Ann", "ann@example.com", "pw")
	require.NoError(t, err)
	token := reg.AccessToken

	_, err = c.Register(ctx, "Ann", "ann@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "User with this email already exists", api.Message(err))

	_, err = c.Login(ctx, "ann@example.com", "nope")
	assert.True(t, errors.Is(err, api.ErrUnauthorized))

	me, err := c.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, me.ID)

	text, err := c.SubmitTextQuestion(ctx, token, "Derivative of x^2?", models.SubjectMathematics)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAnswered, text.Status)
	require.NotNil(t, text.Answer)

	img, err := c.SubmitImageQuestion(ctx, token, api.ImageUpload{
		Filename: "q.png", ContentType: "image/png", Data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
	}, "", models.SubjectPhysics)
	require.NoError(t, err)
	assert.True(t, img.HasImage())

	list, err := c.UserQuestions(ctx, token, me.ID, 0, 50)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, img.ID, list[0].ID)

	_, err = c.DeleteDoubt(ctx, token, text.ID)
	require.NoError(t, err)
	_, err = c.DeleteDoubt(ctx, token, text.ID)
	assert.True(t, errors.Is(err, api.ErrNotFound))

	sent, err := c.SendChatMessage(ctx, token, "hello", img.ID)
	require.NoError(t, err)
	require.NotNil(t, sent.DoubtID)

	msgs, err := c.ChatMessages(ctx, token, img.ID, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, common.ChatAutoReply, msgs[1].Message)

	_, err = c.Logout(ctx, token)
	require.NoError(t, err)

	_, err = c.CurrentUser(ctx, "forged")
	assert.True(t, errors.Is(err, api.ErrUnauthorized))
}
