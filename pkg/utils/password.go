package utils

import (
	"crypto/sha512"
	"encoding/hex"
)

// Sha512Hex 口令单向摘要；与旧控制台存量数据保持同一算法，
// 同一明文必须得到同一摘要（登录校验依赖这一点）。
func Sha512Hex(plain string) string {
	sum := sha512.Sum512([]byte(plain))
	return hex.EncodeToString(sum[:])
}
