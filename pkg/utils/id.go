package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 生成不带连字符的 uuid，作为主键
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
