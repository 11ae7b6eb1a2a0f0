package kv

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.opencensus.io/trace"
)

const backupsDirectoryName = "backups"

// Backup the database to the datadir backup directory.
// Example for a backup taken at block 934:
// $DATADIR/backups/votara_coordinator_at_block_000000934.backup
func (s *Store) Backup(ctx context.Context, outputDir string, permissionOverride bool) error {
	ctx, span := trace.StartSpan(ctx, "CoordinatorDB.Backup")
	defer span.End()

	backupsDir := path.Join(filepath.Dir(s.databasePath), backupsDirectoryName)
	if outputDir != "" {
		backupsDir = outputDir
	}
	if err := handleBackupDir(backupsDir, permissionOverride); err != nil {
		return err
	}

	var block uint64
	cursor, err := s.TailCursor(ctx)
	if err != nil {
		return err
	}
	if cursor != nil {
		block = cursor.LastProcessedBlock
	}

	backupPath := path.Join(backupsDir, fmt.Sprintf("votara_coordinator_at_block_%09d.backup", block))
	log.WithField("backup", backupPath).Info("Writing backup database")
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.CopyFile(backupPath, 0666)
	})
}

// handleBackupDir creates the backups directory, or chmods an existing one to
// 0700 when the caller explicitly allows the override.
func handleBackupDir(dirPath string, permissionOverride bool) error {
	info, err := os.Stat(dirPath)
	switch {
	case os.IsNotExist(err):
		return os.MkdirAll(dirPath, 0700)
	case err != nil:
		return err
	case !info.IsDir():
		return errors.Errorf("backup path %s is not a directory", dirPath)
	case info.Mode().Perm() != 0700:
		if !permissionOverride {
			return errors.Errorf("backup directory %s already exists without 0700 permissions", dirPath)
		}
		return os.Chmod(dirPath, 0700)
	}
	return nil
}
