package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/doubtsolver/internal/client/models"
	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
	"github.com/dmitrijs2005/doubtsolver/internal/netx"
)

// HTTPClient implements Client over HTTP/JSON.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for the backend at origin (for example
// "http://localhost:8001"); every path is resolved under origin + "/api".
// A nil hc means http.DefaultClient.
func NewHTTPClient(origin string, hc *http.Client, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", origin)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &HTTPClient{
		baseURL: u.JoinPath(common.APIPrefix),
		http:    hc,
		logger:  logger.With("component", "api"),
	}, nil
}

// BaseURL returns origin + "/api".
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := loginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) (*Ack, error) {
	var out Ack
	if err := c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SubmitTextQuestion(ctx context.Context, token, question string, subject models.Subject) (*models.Doubt, error) {
	var out models.Doubt
	req := textQuestionRequest{Question: question, Subject: subject}
	if err := c.doJSON(ctx, http.MethodPost, "/questions/text", token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SubmitImageQuestion(ctx context.Context, token string, image ImageUpload, question string, subject models.Subject) (*models.Doubt, error) {
	body, contentType, err := buildImageForm(image, question, subject)
	if err != nil {
		return nil, err
	}

	var out models.Doubt
	if err := c.do(ctx, http.MethodPost, "/questions/image", token, nil, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UserQuestions(ctx context.Context, token, userID string, skip, limit int) ([]models.Doubt, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var out doubtList
	if err := c.doJSON(ctx, http.MethodGet, "/questions/user/"+url.PathEscape(userID), token, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteDoubt(ctx context.Context, token, doubtID string) (*Ack, error) {
	var out Ack
	if err := c.doJSON(ctx, http.MethodDelete, "/doubts/"+url.PathEscape(doubtID), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SendChatMessage(ctx context.Context, token, message, doubtID string) (*models.ChatMessage, error) {
	req := chatSendRequest{Message: message}
	if doubtID != "" {
		req.DoubtID = &doubtID
	}

	var out models.ChatMessage
	if err := c.doJSON(ctx, http.MethodPost, "/chat/send", token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChatMessages(ctx context.Context, token, doubtID string, limit int) ([]models.ChatMessage, error) {
	q := url.Values{}
	if doubtID != "" {
		q.Set("doubt_id", doubtID)
	}
	q.Set("limit", strconv.Itoa(limit))

	var out chatList
	if err := c.doJSON(ctx, http.MethodGet, "/chat/messages", token, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health reports whether the API root answers. Transport failures and 5xx
// responses wrap ErrUnavailable.
func (c *HTTPClient) Health(ctx context.Context) error {
	if err := netx.Probe(ctx, c.http, c.baseURL.JoinPath("/").String()); err != nil {
		return newTransportError(err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, query url.Values, in any, out validator) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, token, query, body, contentType, out)
}

// do performs one request. out may be nil when the body is ignored.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, query url.Values, body io.Reader, contentType string, out validator) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return newTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError(err)
	}

	c.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return newDecodeError(resp.StatusCode, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err))
	}
	if r, ok := out.(rejection); ok {
		if msg, rejected := r.rejected(); rejected {
			return newRejectedError(resp.StatusCode, msg)
		}
	}
	if err := out.Validate(); err != nil {
		return newDecodeError(resp.StatusCode, err)
	}
	return nil
}

func buildImageForm(image ImageUpload, question string, subject models.Subject) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := image.Filename
	if filename == "" {
		filename = "image.png"
	}
	ct := image.ContentType
	if ct == "" {
		ct = http.DetectContentType(image.Data)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}
	if err := w.WriteField("question", question); err != nil {
		return nil, "", fmt.Errorf("write question field: %w", err)
	}
	if err := w.WriteField("subject", string(subject)); err != nil {
		return nil, "", fmt.Errorf("write subject field: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
