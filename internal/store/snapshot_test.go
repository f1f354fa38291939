package store

import (
	"path/filepath"
	"testing"

	"gitwise/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempSnapshots(t *testing.T) (*SnapshotStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := OpenSnapshotStore(path)
	require.NoError(t, err)
	return s, path
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s, path := openTempSnapshots(t)

	user := &models.User{ID: 1, Username: "a", Email: "a@b.com"}
	require.NoError(t, s.Save("tok123", user))

	// simulate a full reload: reopen the same file
	reopened, err := OpenSnapshotStore(path)
	require.NoError(t, err)

	token, loaded, ok, err := reopened.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok123", token)
	assert.Equal(t, user, loaded)
}

func TestSnapshot_LoadWithoutSnapshot(t *testing.T) {
	s, _ := openTempSnapshots(t)

	_, _, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshot_ClearRemovesSession(t *testing.T) {
	s, _ := openTempSnapshots(t)
	require.NoError(t, s.Save("tok123", &models.User{ID: 1}))
	require.NoError(t, s.Clear())

	_, _, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshot_SaveReplacesPrevious(t *testing.T) {
	s, _ := openTempSnapshots(t)
	require.NoError(t, s.Save("old", &models.User{ID: 1, Username: "old"}))
	require.NoError(t, s.Save("new", &models.User{ID: 2, Username: "new"}))

	token, user, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", token)
	assert.Equal(t, uint(2), user.ID)
}

func TestSnapshot_UnknownSchemaVersionIsDiscarded(t *testing.T) {
	s, _ := openTempSnapshots(t)
	require.NoError(t, s.Save("tok123", &models.User{ID: 1}))

	// corrupt the stored version to something from the future
	require.NoError(t, s.db.Model(&snapshotRecord{}).Where("id = ?", 1).
		Update("schema_version", SnapshotSchemaVersion+10).Error)

	_, _, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok, "future-version snapshot must fail closed to logged-out")

	// and the bad row is gone
	_, _, ok, err = s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshot_MigrationUpgradesOldVersions(t *testing.T) {
	s, _ := openTempSnapshots(t)
	require.NoError(t, s.Save("tok123", &models.User{ID: 1, Username: "a"}))
	require.NoError(t, s.db.Model(&snapshotRecord{}).Where("id = ?", 1).
		Update("schema_version", SnapshotSchemaVersion-1).Error)

	migrated := false
	RegisterSnapshotMigration(SnapshotSchemaVersion-1, func(rec *snapshotRecord) error {
		migrated = true
		return nil
	})
	defer delete(snapshotMigrations, SnapshotSchemaVersion-1)

	token, user, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, migrated)
	assert.Equal(t, "tok123", token)
	assert.Equal(t, "a", user.Username)
}

func TestSnapshot_CorruptUserPayloadIsDiscarded(t *testing.T) {
	s, _ := openTempSnapshots(t)
	require.NoError(t, s.Save("tok123", &models.User{ID: 1}))
	require.NoError(t, s.db.Model(&snapshotRecord{}).Where("id = ?", 1).
		Update("user_json", "{not json").Error)

	_, _, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}
