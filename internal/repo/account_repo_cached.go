package repo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-dashboard-admin/internal/core/cache"
	"go-dashboard-admin/internal/domain"
)

const detailTTL = 5 * time.Minute

// CachedAccountRepo 给持久化端口套一层按 id 的读穿缓存。
// 写路径在落库成功之后失效，服务层始终走新鲜的读写。
type CachedAccountRepo struct {
	inner domain.AccountRepository
	store cache.Store
	log   *zap.Logger
}

func NewCachedAccountRepo(inner domain.AccountRepository, store cache.Store, l *zap.Logger) *CachedAccountRepo {
	if l == nil {
		l = zap.NewNop()
	}
	return &CachedAccountRepo{inner: inner, store: store, log: l}
}

func (r *CachedAccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return cache.GetOrLoadJSON(r.store, ctx, detailKey(id), detailTTL,
		func(ctx context.Context) (*domain.Account, error) {
			return r.inner.FindByID(ctx, id)
		})
}

func (r *CachedAccountRepo) FindByUserName(ctx context.Context, userName string) (*domain.Account, error) {
	return r.inner.FindByUserName(ctx, userName)
}

func (r *CachedAccountRepo) List(ctx context.Context, q domain.AccountQuery) ([]domain.Account, int64, error) {
	return r.inner.List(ctx, q)
}

func (r *CachedAccountRepo) Create(ctx context.Context, a *domain.Account) (int64, error) {
	n, err := r.inner.Create(ctx, a)
	if err != nil {
		return n, err
	}
	// 新 id 不会有命中的正缓存，但可能有负缓存，顺手清掉
	r.invalidate(ctx, a.ID)
	return n, nil
}

func (r *CachedAccountRepo) Update(ctx context.Context, a *domain.Account) (int64, error) {
	n, err := r.inner.Update(ctx, a)
	if err != nil {
		return n, err
	}
	r.invalidate(ctx, a.ID)
	return n, nil
}

func (r *CachedAccountRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	n, err := r.inner.DeleteByIDs(ctx, ids)
	if err != nil {
		return n, err
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, detailKey(id))
	}
	if e := r.store.Del(ctx, keys...); e != nil {
		r.log.Warn("cache invalidate failed", zap.Strings("ids", ids), zap.Error(e))
	}
	return n, nil
}

func (r *CachedAccountRepo) invalidate(ctx context.Context, id string) {
	if err := r.store.Del(ctx, detailKey(id)); err != nil {
		r.log.Warn("cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}

func detailKey(id string) string { return "dashboard_user:detail:" + id }
