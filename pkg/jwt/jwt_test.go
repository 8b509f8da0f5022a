package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, exp, err := Generate("secreto", "sess-1", "user-1", "jdoe", []string{"Ideador", "Admin"}, "ideas-api", 30)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jdoe", claims.UserName)
	assert.True(t, claims.HasRole("Admin"))
	assert.False(t, claims.HasRole("Gestor"))
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := Generate("secreto", "sess-1", "user-1", "jdoe", nil, "ideas-api", 30)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, _, err := Generate("secreto", "sess-1", "user-1", "jdoe", nil, "ideas-api", -1)
	require.NoError(t, err)

	_, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, _, err := Generate("", "s", "u", "n", nil, "i", 1)
	assert.Error(t, err)
}
