package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-key"

func TestIssueAndParse(t *testing.T) {
	u := User{ID: "emp-1", Name: "Maria", Role: RoleEditor, Email: "maria@escola.example"}

	token, expiresAt, err := Issue(u, "carometro", testKey, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	parsed, err := Parse(token, testKey, "carometro")
	require.NoError(t, err)
	assert.Equal(t, u, parsed)
}

func TestParse_WrongKey(t *testing.T) {
	u := User{ID: "emp-1", Name: "Maria", Role: RoleEditor}
	token, _, err := Issue(u, "carometro", testKey, time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "other-key", "carometro")
	assert.Error(t, err)
}

func TestParse_IssuerMismatch(t *testing.T) {
	u := User{ID: "emp-1", Name: "Maria", Role: RoleEditor}
	token, _, err := Issue(u, "someone-else", testKey, time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, testKey, "carometro")
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	u := User{ID: "emp-1", Name: "Maria", Role: RoleEditor}
	token, _, err := Issue(u, "carometro", testKey, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, testKey, "carometro")
	assert.Error(t, err)
}

func TestParse_UnknownRoleRejected(t *testing.T) {
	u := User{ID: "emp-1", Name: "Maria", Role: "root"}
	token, _, err := Issue(u, "carometro", testKey, time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, testKey, "carometro")
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("not-a-token", testKey, "carometro")
	assert.Error(t, err)
}
