package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ali506108/Chat-Service/internal/apperr"
	"github.com/Ali506108/Chat-Service/internal/models"
	"github.com/Ali506108/Chat-Service/internal/ws"
)

type stubGroupService struct {
	byID map[string]*models.Group
}

func (s *stubGroupService) Create(_ context.Context, dto *models.CreateGroupDto) (*models.Group, error) {
	now := time.Now().UTC()
	g := &models.Group{
		GroupID:     "g-1",
		Title:       dto.Title,
		Description: dto.Description,
		Admin:       dto.Admin,
		Members:     dto.Members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.byID[g.GroupID] = g
	return g, nil
}

func (s *stubGroupService) GetByID(_ context.Context, id string) (*models.Group, error) {
	g, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("find group", id)
	}
	return g, nil
}

func (s *stubGroupService) Update(_ context.Context, id string, dto *models.CreateGroupDto) (*models.Group, error) {
	g, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("find group", id)
	}
	g.Title = dto.Title
	g.UpdatedAt = time.Now().UTC()
	return g, nil
}

func (s *stubGroupService) List(context.Context, int, int) ([]*models.Group, error) {
	out := []*models.Group{}
	for _, g := range s.byID {
		out = append(out, g)
	}
	return out, nil
}

type stubMessageQueries struct {
	recentLimit int
}

func (s *stubMessageQueries) Get(_ context.Context, id string) (*models.Message, error) {
	if id == "missing" {
		return nil, apperr.NotFound("find message", id)
	}
	return &models.Message{MessageID: id, ChatID: "c1", Content: "hello"}, nil
}

func (s *stubMessageQueries) ListByChat(context.Context, string) ([]*models.Message, error) {
	return []*models.Message{}, nil
}

func (s *stubMessageQueries) Recent(_ context.Context, chatID string, limit int) ([]*models.Message, error) {
	if limit < 1 || limit > 1000 {
		return nil, apperr.Invalid("limit must be in 1..1000, got %d", limit)
	}
	s.recentLimit = limit
	return []*models.Message{}, nil
}

type stubDirectService struct{}

func (stubDirectService) Create(_ context.Context, senderID, receiverID string) (*models.Direct, error) {
	if senderID == "" || receiverID == "" {
		return nil, apperr.Invalid("both participants are required")
	}
	return &models.Direct{ChatID: "d-1", SenderUserID: senderID, ReceiverUserID: receiverID}, nil
}

func (stubDirectService) GetByID(_ context.Context, id string) (*models.Direct, error) {
	return nil, apperr.NotFound("find direct chat", id)
}

func newTestApp() (*fiber.App, *stubGroupService, *stubMessageQueries) {
	groups := &stubGroupService{byID: make(map[string]*models.Group)}
	msgs := &stubMessageQueries{}
	app := NewServer(groups, msgs, stubDirectService{}, ws.NewHub(16), nil,
		ws.Options{}, zap.NewNop().Sugar())
	return app, groups, msgs
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	app, _, _ := newTestApp()
	resp := doJSON(t, app, http.MethodGet, "/v1/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateGroupReturns201(t *testing.T) {
	app, _, _ := newTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/groups/", models.CreateGroupDto{
		Title: "Team", Admin: "u1", Members: []string{"u1", "u2"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Status string       `json:"status"`
		Data   models.Group `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.Equal(t, "Team", envelope.Data.Title)
	assert.NotEmpty(t, envelope.Data.GroupID)
}

func TestGetGroupNotFoundMapsTo404(t *testing.T) {
	app, _, _ := newTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/v1/groups/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetGroupAfterCreate(t *testing.T) {
	app, groups, _ := newTestApp()
	_, err := groups.Create(context.Background(), &models.CreateGroupDto{Title: "Team"})
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/groups/g-1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRecentMessagesBadLimitMapsTo400(t *testing.T) {
	app, _, _ := newTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/v1/chats/c1/messages/recent?limit=2000", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecentMessagesDefaultsLimit(t *testing.T) {
	app, _, msgs := newTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/v1/chats/c1/messages/recent", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 50, msgs.recentLimit)
}

func TestGetMessageNotFound(t *testing.T) {
	app, _, _ := newTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/v1/messages/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateDirectValidates(t *testing.T) {
	app, _, _ := newTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/directs/", map[string]string{
		"senderUserId": "u1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
