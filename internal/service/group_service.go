package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ali506108/Chat-Service/internal/apperr"
	"github.com/Ali506108/Chat-Service/internal/metrics"
	"github.com/Ali506108/Chat-Service/internal/models"
)

const (
	groupReadTimeout  = 3 * time.Second
	groupWriteTimeout = 5 * time.Second
)

// GroupStore is the authoritative group record store.
type GroupStore interface {
	Save(ctx context.Context, g *models.Group) (*models.Group, error)
	FindByID(ctx context.Context, id string) (*models.Group, error)
	FindAll(ctx context.Context, page, size int64) ([]*models.Group, error)
}

// GroupCache is the TTL-bounded shadow copy. Get returns (nil, nil) on a
// miss.
type GroupCache interface {
	Get(ctx context.Context, groupID string) (*models.Group, error)
	Set(ctx context.Context, g *models.Group) error
	Delete(ctx context.Context, groupID string) error
}

// GroupService keeps the redis copy of groups in step with mongo using
// cache-aside: reads try redis first, writes go to mongo and refresh
// redis opportunistically. Cache writes never fail the caller.
type GroupService struct {
	repo  GroupStore
	cache GroupCache
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewGroupService(repo GroupStore, cache GroupCache, log *zap.SugaredLogger) *GroupService {
	return &GroupService{repo: repo, cache: cache, log: log, now: time.Now}
}

// Create assigns a fresh group id and both timestamps, persists to mongo
// and writes through to redis.
func (s *GroupService) Create(ctx context.Context, dto *models.CreateGroupDto) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, groupWriteTimeout)
	defer cancel()

	now := s.now().UTC()
	g := &models.Group{
		GroupID:     uuid.NewString(),
		Title:       dto.Title,
		Description: dto.Description,
		Admin:       dto.Admin,
		Members:     dto.Members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := s.repo.Save(ctx, g)
	if err != nil {
		return nil, apperr.Persistence("create group", g.GroupID, err)
	}
	s.cacheWrite(ctx, saved)
	return saved, nil
}

// GetByID serves from redis when possible; a hit never touches mongo.
// A miss falls through to mongo and refreshes the cache on the way out.
func (s *GroupService) GetByID(ctx context.Context, groupID string) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, groupReadTimeout)
	defer cancel()

	cached, err := s.cache.Get(ctx, groupID)
	if err != nil {
		// A broken cache read degrades to a miss; mongo still answers.
		s.log.Warnw("group cache read failed", "group_id", groupID, "err", err)
	}
	if cached != nil {
		metrics.GroupCacheHits.Inc()
		return cached, nil
	}
	metrics.GroupCacheMisses.Inc()

	g, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, apperr.Lookup("get group", groupID, err)
	}
	s.cacheWrite(ctx, g)
	return g, nil
}

// Update acts on the latest durable record, never the cached one.
func (s *GroupService) Update(ctx context.Context, groupID string, dto *models.CreateGroupDto) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, groupWriteTimeout)
	defer cancel()

	g, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, apperr.Lookup("update group", groupID, err)
	}

	g.Title = dto.Title
	g.Description = dto.Description
	g.Admin = dto.Admin
	g.Members = dto.Members
	g.UpdatedAt = s.now().UTC()

	saved, err := s.repo.Save(ctx, g)
	if err != nil {
		return nil, apperr.Persistence("update group", groupID, err)
	}
	s.cacheWrite(ctx, saved)
	return saved, nil
}

// List pages straight from mongo; list results are not cache-addressable
// by a single key, so the cache is not consulted.
func (s *GroupService) List(ctx context.Context, page, size int) ([]*models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, groupReadTimeout)
	defer cancel()

	groups, err := s.repo.FindAll(ctx, int64(page), int64(size))
	if err != nil {
		return nil, apperr.Lookup("list groups", "", err)
	}
	return groups, nil
}

// cacheWrite refreshes the shadow copy. Failures are logged and swallowed;
// the mongo result already stands.
func (s *GroupService) cacheWrite(ctx context.Context, g *models.Group) {
	if err := s.cache.Set(ctx, g); err != nil {
		s.log.Warnw("group cache write failed", "group_id", g.GroupID, "err", err)
	}
}
