package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
)

// UserDirectory resolves user ids to public profiles, caching what it has seen.
type UserDirectory struct {
	repo   UserRepository
	cache  *cache.Cache
	logger *slog.Logger
}

func NewUserDirectory(logger *slog.Logger, repo UserRepository, ttl time.Duration) *UserDirectory {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &UserDirectory{
		repo:   repo,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Lookup returns the known users among ids. Cache misses are loaded in a single query.
func (d *UserDirectory) Lookup(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error) {
	out := make(map[uuid.UUID]domain.User, len(ids))
	missing := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if v, ok := d.cache.Get(id.String()); ok {
			out[id] = v.(domain.User)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := d.repo.Users(ctx, missing)
	if err != nil {
		return out, err
	}
	for id, u := range loaded {
		d.cache.SetDefault(id.String(), u)
		out[id] = u
	}
	return out, nil
}

// Ref never fails: an unknown or unreachable user comes back as a bare id.
func (d *UserDirectory) Ref(ctx context.Context, id uuid.UUID) domain.UserRef {
	users, err := d.Lookup(ctx, []uuid.UUID{id})
	if err != nil {
		d.logger.Warn("user lookup failed", slog.String("user_id", id.String()), slog.Any("error", err))
	}
	if u, ok := users[id]; ok {
		return u.Ref()
	}
	return domain.UserRef{ID: id}
}
