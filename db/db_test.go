package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	got, err := ConnString("postgres://explicit")
	require.NoError(t, err)
	assert.Equal(t, "postgres://explicit", got)

	_, err = ConnString("")
	assert.Error(t, err)

	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "salon")
	t.Setenv("DB_NAME", "colors")
	t.Setenv("DB_PASSWORD", "secret")
	got, err = ConnString("")
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=salon password=secret dbname=colors sslmode=disable", got)

	t.Setenv("DATABASE_URL", "postgres://from-env")
	got, err = ConnString("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://from-env", got)
}
