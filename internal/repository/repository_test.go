package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prperemyshlev/task-manager/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &database.Postgres{DB: db}, mock
}

func TestNewRepositories(t *testing.T) {
	db, _ := newMockDB(t)

	repos := NewRepositories(db)

	assert.NotNil(t, repos.User)
	assert.NotNil(t, repos.Task)
}

func TestParseID(t *testing.T) {
	id, ok := parseID("6F9619FF-8B86-D011-B42D-00C04FC964FF")
	assert.True(t, ok)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", id)

	_, ok = parseID("64b7f0c2e4b0a1a2b3c4d5e6")
	assert.False(t, ok)

	_, ok = parseID("")
	assert.False(t, ok)
}
