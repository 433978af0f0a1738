package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"go-dashboard-admin/internal/domain"
	"go-dashboard-admin/pkg/utils"
)

// AccountService 后台用户账号管理。不在调用之间持有任何账号状态，
// 每次操作都是对持久化端口的新鲜读写。
type AccountService struct {
	repo domain.AccountRepository
	log  *zap.Logger
}

func NewAccountService(repo domain.AccountRepository, l *zap.Logger) *AccountService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AccountService{repo: repo, log: l}
}

// ListAccounts 分页查询；空页也是成功，空与失败由调用方区分展示
func (s *AccountService) ListAccounts(ctx context.Context, q domain.AccountQuery) (*domain.AccountPage, error) {
	if q.Page <= 0 || q.PageSize <= 0 {
		return nil, domain.Invalid("currentPage/pageSize", "must be positive")
	}
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list dashboard users: %w", err)
	}
	if rows == nil {
		rows = []domain.Account{}
	}
	return &domain.AccountPage{List: rows, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (s *AccountService) GetAccountDetail(ctx context.Context, id string) (*domain.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Invalid("id", "is not blank")
	}
	return s.findExisting(ctx, id)
}

// CreateAccount 明文口令在落库前完成摘要；校验失败不会触达持久层
func (s *AccountService) CreateAccount(ctx context.Context, in domain.AccountInput) (int64, error) {
	if strings.TrimSpace(in.Password) == "" {
		return 0, domain.Invalid("password", "is not blank")
	}
	if strings.TrimSpace(in.Role) == "" {
		return 0, domain.Invalid("role", "is not null")
	}
	if strings.TrimSpace(in.UserName) == "" {
		return 0, domain.Invalid("userName", "is not blank")
	}
	a := &domain.Account{
		ID:           utils.NewID(),
		UserName:     in.UserName,
		PasswordHash: utils.Sha512Hex(in.Password),
		Role:         in.Role,
		Enabled:      in.Enabled,
	}
	n, err := s.repo.Create(ctx, a)
	if err != nil {
		return 0, err
	}
	s.log.Info("dashboard user created",
		zap.String("id", a.ID), zap.String("userName", a.UserName), zap.String("role", a.Role))
	return n, nil
}

// UpdateAccount 前置存在性检查；口令非空才重新摘要，空口令保留原散列；
// 请求体里的 id 一律被路径 id 覆盖
func (s *AccountService) UpdateAccount(ctx context.Context, id string, in domain.AccountInput) (int64, error) {
	existing, err := s.findExisting(ctx, id)
	if err != nil {
		return 0, err
	}
	existing.ID = id
	if strings.TrimSpace(in.UserName) != "" {
		existing.UserName = in.UserName
	}
	if strings.TrimSpace(in.Role) != "" {
		existing.Role = in.Role
	}
	existing.Enabled = in.Enabled
	if strings.TrimSpace(in.Password) != "" {
		existing.PasswordHash = utils.Sha512Hex(in.Password)
	}
	n, err := s.repo.Update(ctx, existing)
	if err != nil {
		return 0, err
	}
	s.log.Info("dashboard user updated", zap.String("id", id))
	return n, nil
}

// ChangePassword 自助改密授权：登录态必须存在，且
// caller.UserID == id 或 caller.UserName == in.UserName 其一成立即放行。
// 校验通过后走普通更新路径。
func (s *AccountService) ChangePassword(ctx context.Context, id string, in domain.AccountInput, caller *domain.CallerIdentity) (int64, error) {
	if caller == nil {
		return 0, domain.ErrLoginRequired
	}
	if caller.UserID != id && caller.UserName != in.UserName {
		s.log.Warn("modify password denied",
			zap.String("targetId", id), zap.String("callerId", caller.UserID))
		return 0, domain.ErrPasswordDenied
	}
	return s.UpdateAccount(ctx, id, in)
}

// DeleteAccounts 批量删除，按集合语义去重；返回实际删除行数，
// 少于请求数不算错误（目标已不存在时删除是幂等的）
func (s *AccountService) DeleteAccounts(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.Invalid("ids", "is not empty")
	}
	seen := make(map[string]struct{}, len(ids))
	uniq := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return 0, domain.Invalid("ids", "contains blank id")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	n, err := s.repo.DeleteByIDs(ctx, uniq)
	if err != nil {
		return 0, fmt.Errorf("delete dashboard users: %w", err)
	}
	s.log.Info("dashboard users deleted", zap.Int64("deleted", n), zap.Int("requested", len(uniq)))
	return n, nil
}

func (s *AccountService) findExisting(ctx context.Context, id string) (*domain.Account, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find dashboard user %s: %w", id, err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}
