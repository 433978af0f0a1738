package domain

import (
	"context"
	"time"
)

// Account 控制台后台用户（凭证 + 角色）
type Account struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	UserName     string `gorm:"uniqueIndex;size:64;not null" json:"userName"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	Role         string `gorm:"size:16;not null" json:"role"` // "admin"/"viewer"
	Enabled      bool   `gorm:"not null;default:true" json:"enabled"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"dateCreated"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"dateUpdated"`
}

func (Account) TableName() string { return "dashboard_user" }

// AccountInput 传输层提交的用户数据；ID 一律以路径参数为准
type AccountInput struct {
	ID       string `json:"id"`
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
}

// AccountQuery 分页查询条件，Page 从 1 开始
type AccountQuery struct {
	UserName string
	Page     int
	PageSize int
}

type AccountPage struct {
	List     []Account `json:"list"`
	Total    int64     `json:"total"`
	Page     int       `json:"currentPage"`
	PageSize int       `json:"pageSize"`
}

// CallerIdentity 当前操作人；nil 表示未解析出登录态
type CallerIdentity struct {
	UserID   string
	UserName string
}

// AccountRepository 持久化端口：userName 唯一性与单行原子性由实现方保证。
// FindByID / FindByUserName 未命中时返回 (nil, nil)。
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByUserName(ctx context.Context, userName string) (*Account, error)
	List(ctx context.Context, q AccountQuery) ([]Account, int64, error)
	Create(ctx context.Context, a *Account) (int64, error)
	Update(ctx context.Context, a *Account) (int64, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
