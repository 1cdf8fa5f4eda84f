package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenConfiguresConnection(t *testing.T) {
	db := testDB(t)

	var mode string
	require.NoError(t, db.Pool.QueryRow(`PRAGMA journal_mode;`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var busy int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA busy_timeout;`).Scan(&busy))
	assert.Equal(t, 5000, busy)
}
