package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleHas(t *testing.T) {
	assert.True(t, RoleHas("admin", PermManagerDelete))
	assert.True(t, RoleHas("viewer", PermManagerList))
	assert.False(t, RoleHas("viewer", PermManagerAdd))
	assert.False(t, RoleHas("", PermManagerList))
	assert.False(t, RoleHas("ghost", PermManagerList))
}

func TestJWTRoundTrip(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "dashboard-admin", TTL: time.Minute}

	tok, err := j.Issue("u1", "alice", "admin")
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "alice", claims.UserName)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTParse_WrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "dashboard-admin", TTL: time.Minute}
	tok, err := j.Issue("u1", "alice", "admin")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("different"), Issuer: "dashboard-admin", TTL: time.Minute}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}
