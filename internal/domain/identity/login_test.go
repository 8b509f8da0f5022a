package identity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ideas-api/internal/domain/identity"
)

func TestNormalizeLogin(t *testing.T) {
	cases := map[string]string{
		"jdoe":               "jdoe",
		"  jdoe  ":           "jdoe",
		"jdoe@corp.local":    "jdoe",
		"JDoe@Corp.Local":    "jdoe",
		"a@b@c":              "a",
		"@jdoe":              "@jdoe",
		"  María@corp.local": "maría",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, identity.NormalizeLogin(in), "entrada %q", in)
	}
}

func TestSameLogin_CorreoYLoginResuelvenIgual(t *testing.T) {
	assert.True(t, identity.SameLogin("jdoe@corp.local", "jdoe"))
	assert.True(t, identity.SameLogin("JDOE", "jdoe"))
	assert.False(t, identity.SameLogin("jdoe", "jdoe2"))
}

func TestTrimTo(t *testing.T) {
	assert.Nil(t, identity.TrimTo("   ", 10))

	got := identity.TrimTo("  Juan Pérez  ", 200)
	require.NotNil(t, got)
	assert.Equal(t, "Juan Pérez", *got)

	long := identity.TrimTo(strings.Repeat("ñ", 25), 20)
	require.NotNil(t, long)
	assert.Equal(t, strings.Repeat("ñ", 20), *long)
}
