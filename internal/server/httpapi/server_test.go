package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
	"github.com/dmitrijs2005/doubtsolver/internal/server/chat"
	"github.com/dmitrijs2005/doubtsolver/internal/server/doubts"
	"github.com/dmitrijs2005/doubtsolver/internal/server/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	l := logging.Discard()
	return NewServer(":0", l,
		users.NewService(users.NewMemoryRepository(), "test-secret", time.Hour),
		doubts.NewService(doubts.NewMemoryRepository(), doubts.NewTemplateAnswerer(), l),
		chat.NewService(chat.NewMemoryRepository()),
	)
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type authBody struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type detailBody struct {
	Detail string `json:"detail"`
}

func register(t *testing.T, s *Server, email string) authBody {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ann", "email": email, "password": "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[authBody](t, rec)
}

func TestRoot(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DoubtSolver API is running")
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodOptions, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	reg := register(t, s, "ann@example.com")
	assert.True(t, reg.Success)
	assert.NotEmpty(t, reg.AccessToken)

	rec := do(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User with this email already exists", decode[detailBody](t, rec).Detail)

	rec = do(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode[detailBody](t, rec).Detail)

	rec = do(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ann@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[authBody](t, rec)
	assert.Equal(t, reg.User.ID, login.User.ID)

	rec = do(t, s, http.MethodGet, "/api/auth/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ann@example.com"`)

	rec = do(t, s, http.MethodPost, "/api/auth/logout", login.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_ValidationDetailList(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ann", "email": "not-an-email",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[struct {
		Detail []fieldError `json:"detail"`
	}](t, rec)
	require.Len(t, body.Detail, 2)
	assert.Equal(t, []string{"body", "email"}, body.Detail[0].Loc)
	assert.Equal(t, "value is not a valid email address", body.Detail[0].Msg)
	assert.Equal(t, "password is required", body.Detail[1].Msg)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", decode[detailBody](t, rec).Detail)

	rec = do(t, s, http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode[detailBody](t, rec).Detail)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(common.AuthorizationHeader, "Basic abc")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestQuestions(t *testing.T) {
	s := newTestServer(t)
	ann := register(t, s, "ann@example.com")
	bob := register(t, s, "bob@example.com")

	rec := do(t, s, http.MethodPost, "/api/questions/text", ann.AccessToken, map[string]string{
		"question": "What is osmosis?", "subject": "biology",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[struct {
		ID      string `json:"id"`
		Subject string `json:"subject"`
		Status  string `json:"status"`
		Answer  struct {
			Steps []string `json:"steps"`
		} `json:"answer"`
	}](t, rec)
	assert.Equal(t, "Biology", created.Subject)
	assert.Equal(t, "answered", created.Status)
	assert.NotEmpty(t, created.Answer.Steps)

	rec = do(t, s, http.MethodPost, "/api/questions/text", ann.AccessToken, map[string]string{
		"question": "?", "subject": "Astrology",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/questions/user/"+ann.User.ID+"?skip=0&limit=10", ann.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0]["id"])

	rec = do(t, s, http.MethodGet, "/api/questions/user/"+ann.User.ID, bob.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/questions/user/"+ann.User.ID+"?limit=x", ann.AccessToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/doubts/"+created.ID, bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/doubts/"+created.ID, ann.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/doubts/"+created.ID, ann.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Doubt not found", decode[detailBody](t, rec).Detail)
}

func imageRequest(t *testing.T, token, contentType string, data []byte, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if withFile {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="q.png"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("question", ""))
	require.NoError(t, w.WriteField("subject", "Physics"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/questions/image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	return req
}

func TestImageQuestion(t *testing.T) {
	s := newTestServer(t)
	ann := register(t, s, "ann@example.com")

	tests := []struct {
		name       string
		ct         string
		data       []byte
		withFile   bool
		wantStatus int
	}{
		{name: "png", ct: "image/png", data: pngBytes, withFile: true, wantStatus: http.StatusOK},
		{name: "declared text", ct: "text/plain", data: pngBytes, withFile: true, wantStatus: http.StatusBadRequest},
		{name: "not an image", ct: "image/png", data: []byte("hello"), withFile: true, wantStatus: http.StatusBadRequest},
		{name: "too large", ct: "image/png", data: append(append([]byte{}, pngBytes...), make([]byte, common.MaxImageSize)...), withFile: true, wantStatus: http.StatusBadRequest},
		{name: "missing file", withFile: false, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, imageRequest(t, ann.AccessToken, tt.ct, tt.data, tt.withFile))
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"question_type":"image"`)
				assert.Contains(t, rec.Body.String(), `data:image/png;base64,`)
			}
		})
	}
}

func TestChat(t *testing.T) {
	s := newTestServer(t)
	ann := register(t, s, "ann@example.com")

	rec := do(t, s, http.MethodPost, "/api/chat/send", ann.AccessToken, map[string]any{"message": "help", "doubt_id": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"sender_type":"user"`)

	rec = do(t, s, http.MethodPost, "/api/chat/send", ann.AccessToken, map[string]any{"message": "about q1", "doubt_id": "q1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/chat/send", ann.AccessToken, map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/chat/messages?doubt_id=q1&limit=50", ann.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decode[[]map[string]any](t, rec)
	require.Len(t, msgs, 2)
	assert.Equal(t, "about q1", msgs[0]["message"])
	assert.Equal(t, common.ChatAutoReply, msgs[1]["message"])

	rec = do(t, s, http.MethodGet, "/api/chat/messages", ann.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 4)
}
