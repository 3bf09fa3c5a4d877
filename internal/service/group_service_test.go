package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ali506108/Chat-Service/internal/apperr"
	"github.com/Ali506108/Chat-Service/internal/models"
)

type fakeGroupStore struct {
	byID      map[string]*models.Group
	saveErr   error
	findErr   error
	findCalls int
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{byID: make(map[string]*models.Group)}
}

func (f *fakeGroupStore) Save(_ context.Context, g *models.Group) (*models.Group, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	cp := *g
	f.byID[g.GroupID] = &cp
	return &cp, nil
}

func (f *fakeGroupStore) FindByID(_ context.Context, id string) (*models.Group, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	g, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("find group", id)
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGroupStore) FindAll(_ context.Context, page, size int64) ([]*models.Group, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := []*models.Group{}
	for _, g := range f.byID {
		out = append(out, g)
	}
	return out, nil
}

type fakeGroupCache struct {
	entries  map[string]*models.Group
	getErr   error
	setErr   error
	setCalls int
}

func newFakeGroupCache() *fakeGroupCache {
	return &fakeGroupCache{entries: make(map[string]*models.Group)}
}

func (f *fakeGroupCache) Get(_ context.Context, id string) (*models.Group, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	g, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGroupCache) Set(_ context.Context, g *models.Group) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	cp := *g
	f.entries[g.GroupID] = &cp
	return nil
}

func (f *fakeGroupCache) Delete(_ context.Context, id string) error {
	delete(f.entries, id)
	return nil
}

func newGroupService(store *fakeGroupStore, c *fakeGroupCache) *GroupService {
	return NewGroupService(store, c, zap.NewNop().Sugar())
}

var teamDto = &models.CreateGroupDto{
	Title:       "Team",
	Description: "x",
	Admin:       "u1",
	Members:     []string{"u1", "u2"},
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	store := newFakeGroupStore()
	cch := newFakeGroupCache()
	svc := newGroupService(store, cch)

	g, err := svc.Create(context.Background(), teamDto)
	require.NoError(t, err)

	assert.NotEmpty(t, g.GroupID)
	assert.Equal(t, "Team", g.Title)
	assert.Equal(t, g.CreatedAt, g.UpdatedAt)
	assert.Contains(t, store.byID, g.GroupID)
	assert.Contains(t, cch.entries, g.GroupID, "create writes through to the cache")
}

func TestCreateSurvivesCacheWriteFailure(t *testing.T) {
	store := newFakeGroupStore()
	cch := newFakeGroupCache()
	cch.setErr = errors.New("redis down")
	svc := newGroupService(store, cch)

	g, err := svc.Create(context.Background(), teamDto)
	require.NoError(t, err, "cache writes are advisory")
	assert.Contains(t, store.byID, g.GroupID)
}

func TestCreateStoreFailure(t *testing.T) {
	store := newFakeGroupStore()
	store.saveErr = errors.New("db down")
	svc := newGroupService(store, newFakeGroupCache())

	_, err := svc.Create(context.Background(), teamDto)
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}

func TestGetByIDCacheHitSkipsStore(t *testing.T) {
	store := newFakeGroupStore()
	cch := newFakeGroupCache()
	svc := newGroupService(store, cch)

	g, err := svc.Create(context.Background(), teamDto)
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), g.GroupID)
	require.NoError(t, err)
	assert.Equal(t, g.GroupID, got.GroupID)
	assert.Zero(t, store.findCalls, "cache hit must not round-trip to the store")
}

func TestGetByIDMissFillsCache(t *testing.T) {
	store := newFakeGroupStore()
	cch := newFakeGroupCache()
	svc := newGroupService(store, cch)

	g, err := svc.Create(context.Background(), teamDto)
	require.NoError(t, err)
	// Simulate TTL expiry.
	require.NoError(t, cch.Delete(context.Background(), g.GroupID))

	first, err := svc.GetByID(context.Background(), g.GroupID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.findCalls)

	second, err := svc.GetByID(context.Background(), g.GroupID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.findCalls, "second read is served from cache")
}

func TestGetByIDDistinguishesAbsenceFromStoreFailure(t *testing.T) {
	store := newFakeGroupStore()
	svc := newGroupService(store, newFakeGroupCache())

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	store.findErr = errors.New("store unreachable")
	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrLookup)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetByIDCacheReadFailureDegradesToMiss(t *testing.T) {
	store := newFakeGroupStore()
	cch := newFakeGroupCache()
	svc := newGroupService(store, cch)

	g, err := svc.Create(context.Background(), teamDto)
	require.NoError(t, err)

	cch.getErr = errors.New("redis down")
	got, err := svc.GetByID(context.Background(), g.GroupID)
	require.NoError(t, err)
	assert.Equal(t, g.GroupID, got.GroupID)
	assert.Equal(t, 1, store.findCalls)
}

func TestUpdateReplacesFieldsAndAdvancesUpdatedAt(t *testing.T) {
	store := newFakeGroupStore()
	cch := newFakeGroupCache()
	svc := newGroupService(store, cch)

	g, err := svc.Create(context.Background(), teamDto)
	require.NoError(t, err)

	svc.now = func() time.Time { return g.CreatedAt.Add(time.Minute) }
	updated, err := svc.Update(context.Background(), g.GroupID, &models.CreateGroupDto{
		Title:       "Team 2",
		Description: "y",
		Admin:       "u2",
		Members:     []string{"u2", "u3"},
	})
	require.NoError(t, err)

	assert.Equal(t, g.GroupID, updated.GroupID)
	assert.Equal(t, "Team 2", updated.Title)
	assert.Equal(t, []string{"u2", "u3"}, updated.Members)
	assert.Equal(t, g.CreatedAt, updated.CreatedAt, "creation time is immutable")
	assert.True(t, updated.UpdatedAt.After(g.UpdatedAt))

	got, err := svc.GetByID(context.Background(), g.GroupID)
	require.NoError(t, err)
	assert.Equal(t, "Team 2", got.Title, "cache was refreshed on update")
}

func TestUpdateReadsStoreNotCache(t *testing.T) {
	store := newFakeGroupStore()
	cch := newFakeGroupCache()
	svc := newGroupService(store, cch)

	g, err := svc.Create(context.Background(), teamDto)
	require.NoError(t, err)

	// Poison the cache; update must act on the durable record.
	stale := *g
	stale.Title = "stale"
	cch.entries[g.GroupID] = &stale

	updated, err := svc.Update(context.Background(), g.GroupID, teamDto)
	require.NoError(t, err)
	assert.Equal(t, "Team", updated.Title)
	assert.Equal(t, 1, store.findCalls)
}

func TestUpdateMissingGroup(t *testing.T) {
	svc := newGroupService(newFakeGroupStore(), newFakeGroupCache())

	_, err := svc.Update(context.Background(), "missing", teamDto)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListEmptyPageIsValid(t *testing.T) {
	svc := newGroupService(newFakeGroupStore(), newFakeGroupCache())

	groups, err := svc.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
