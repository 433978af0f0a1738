package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-dashboard-admin/internal/domain"
)

// memStore 内存实现，行为同 redis 读穿缓存（忽略 TTL）
type memStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemStore() *memStore { return &memStore{m: map[string][]byte{}} }

func (s *memStore) GetOrLoad(ctx context.Context, key string, _ time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	s.mu.Lock()
	b, ok := s.m[key]
	s.mu.Unlock()
	if ok {
		return b, nil
	}
	b, err := load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.m[key] = b
	s.mu.Unlock()
	return b, nil
}

func (s *memStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.m, k)
	}
	return nil
}

type countingRepo struct {
	byID    map[string]*domain.Account
	finders int
}

func (f *countingRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	f.finders++
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *countingRepo) FindByUserName(_ context.Context, userName string) (*domain.Account, error) {
	for _, a := range f.byID {
		if a.UserName == userName {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *countingRepo) List(_ context.Context, _ domain.AccountQuery) ([]domain.Account, int64, error) {
	return nil, 0, nil
}

func (f *countingRepo) Create(_ context.Context, a *domain.Account) (int64, error) {
	f.byID[a.ID] = a
	return 1, nil
}

func (f *countingRepo) Update(_ context.Context, a *domain.Account) (int64, error) {
	f.byID[a.ID] = a
	return 1, nil
}

func (f *countingRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.byID[id]; ok {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

func newCached(accounts ...*domain.Account) (*CachedAccountRepo, *countingRepo, *memStore) {
	inner := &countingRepo{byID: map[string]*domain.Account{}}
	for _, a := range accounts {
		inner.byID[a.ID] = a
	}
	store := newMemStore()
	return NewCachedAccountRepo(inner, store, nil), inner, store
}

func TestCachedRepo_ReadThrough(t *testing.T) {
	cached, inner, _ := newCached(&domain.Account{ID: "u1", UserName: "alice", Role: "admin"})
	ctx := context.Background()

	a, err := cached.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.UserName)
	assert.Equal(t, 1, inner.finders)

	// 第二次命中缓存，不再回源
	a, err = cached.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.UserName)
	assert.Equal(t, 1, inner.finders)
}

func TestCachedRepo_UpdateInvalidatesAfterWrite(t *testing.T) {
	cached, _, _ := newCached(&domain.Account{ID: "u1", UserName: "alice", Role: "admin"})
	ctx := context.Background()

	// 先把旧记录读进缓存
	a, err := cached.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "admin", a.Role)

	a.Role = "viewer"
	_, err = cached.Update(ctx, a)
	require.NoError(t, err)

	// 写后必须读到新值，不允许残留落库前的记录
	got, err := cached.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "viewer", got.Role)
}

func TestCachedRepo_DeleteInvalidates(t *testing.T) {
	cached, _, _ := newCached(&domain.Account{ID: "u1", UserName: "alice", Role: "admin"})
	ctx := context.Background()

	_, err := cached.FindByID(ctx, "u1")
	require.NoError(t, err)

	n, err := cached.DeleteByIDs(ctx, []string{"u1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := cached.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCachedRepo_CreateClearsNegativeEntry(t *testing.T) {
	cached, _, _ := newCached()
	ctx := context.Background()

	// 未命中会缓存 "不存在"
	got, err := cached.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = cached.Create(ctx, &domain.Account{ID: "u1", UserName: "alice", Role: "admin"})
	require.NoError(t, err)

	got, err = cached.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.UserName)
}
