package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSha512Hex(t *testing.T) {
	h := Sha512Hex("123456")

	// 幂等：同一明文必须得到同一摘要
	assert.Equal(t, h, Sha512Hex("123456"))
	assert.NotEqual(t, "123456", h)
	assert.Len(t, h, 128)

	// 与旧控制台存量数据一致的已知向量
	assert.Equal(t,
		"ba3253876aed6bc22d4a6ff53d8406c6ad864195ed144ab5c87621b6c233b548baeae6956df346ec8c17f5ea10f35ee3cbc514797ed7ddd3145464e2a0bae2f9",
		h)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
	assert.Len(t, a, 32)
}
