package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeSchema(t *testing.T) {
	t.Run("accepts plain identifiers", func(t *testing.T) {
		schema, err := sanitizeSchema("  spaceaudit ")

		require.NoError(t, err)
		assert.Equal(t, "spaceaudit", schema)
	})

	t.Run("rejects empty schema", func(t *testing.T) {
		_, err := sanitizeSchema("   ")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("rejects injection-shaped names", func(t *testing.T) {
		for _, bad := range []string{"public; DROP TABLE x", "1schema", "space-audit", `sa"`} {
			_, err := sanitizeSchema(bad)
			require.Error(t, err, "schema %q should be rejected", bad)
		}
	})
}

func TestURLFromEnv(t *testing.T) {
	t.Run("prefers the dedicated variable over DATABASE_URL", func(t *testing.T) {
		t.Setenv("SPACEAUDIT_DB_URL", "postgres://primary")
		t.Setenv("DATABASE_URL", "postgres://fallback")

		assert.Equal(t, "postgres://primary", URLFromEnv())
	})

	t.Run("falls back to DATABASE_URL", func(t *testing.T) {
		t.Setenv("SPACEAUDIT_DB_URL", "")
		t.Setenv("DATABASE_URL", "postgres://fallback")

		assert.Equal(t, "postgres://fallback", URLFromEnv())
	})
}

func TestNullString(t *testing.T) {
	t.Run("blank values map to SQL NULL", func(t *testing.T) {
		assert.False(t, nullString("  ").Valid)
	})

	t.Run("non-blank values are trimmed and kept", func(t *testing.T) {
		v := nullString(" march-drop ")

		assert.True(t, v.Valid)
		assert.Equal(t, "march-drop", v.String)
	})
}
