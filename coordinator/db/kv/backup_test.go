package kv

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/althof3/votara/testing/require"
	bolt "go.etcd.io/bbolt"
)

func TestStore_Backup(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveTailCursor(ctx, 5000))
	require.NoError(t, db.Backup(ctx, "", false))

	backupsDir := path.Join(filepath.Dir(db.databasePath), backupsDirectoryName)
	files, err := os.ReadDir(backupsDir)
	require.NoError(t, err)
	require.Equal(t, 1, len(files), "No backups created")
	require.Equal(t, "votara_coordinator_at_block_000005000.backup", files[0].Name())

	// The copy must be a readable bolt database carrying the same cursor.
	copied, err := bolt.Open(path.Join(backupsDir, files[0].Name()), 0600, &bolt.Options{ReadOnly: true})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, copied.Close())
	}()
	require.NoError(t, copied.View(func(tx *bolt.Tx) error {
		if tx.Bucket(chainMetadataBucket).Get(tailCursorKey) == nil {
			t.Error("Expected backup to carry the tail cursor")
		}
		return nil
	}))
}

func TestStore_Backup_CustomOutputDir(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	outputDir := path.Join(t.TempDir(), "offsite")
	require.NoError(t, db.Backup(ctx, outputDir, false))

	files, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Equal(t, 1, len(files), "No backups created")
	// A database that never processed a window backs up at block zero.
	require.Equal(t, "votara_coordinator_at_block_000000000.backup", files[0].Name())
}

func TestHandleBackupDir_PermissionMismatch(t *testing.T) {
	dirPath := path.Join(t.TempDir(), "loose")
	require.NoError(t, os.MkdirAll(dirPath, 0755))

	err := handleBackupDir(dirPath, false)
	require.ErrorContains(t, "without 0700 permissions", err)

	require.NoError(t, handleBackupDir(dirPath, true))
	info, err := os.Stat(dirPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}
