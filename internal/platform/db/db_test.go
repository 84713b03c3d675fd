package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "INSERT INTO walks (a, b, c) VALUES (?, ?, ?)"
	assert.Equal(t, q, Rebind(DriverSQLite, q))
	assert.Equal(t, "INSERT INTO walks (a, b, c) VALUES ($1, $2, $3)", Rebind(DriverPostgres, q))
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "walks.db"))
	require.NoError(t, err)
	defer db.Close()

	var one int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "")
	require.Error(t, err)
}
