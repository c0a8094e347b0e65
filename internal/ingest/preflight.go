package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/clinifin/grdload/internal/csvread"
	"github.com/clinifin/grdload/internal/normalize"
	embedsql "github.com/clinifin/grdload/internal/sql"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file.
	FileSHA256 string
	// FileSize is the file size in bytes from os.Stat.
	FileSize int64
	// ImportFileID is the DB primary key for this import file record,
	// inserted or looked up via its sha256.
	ImportFileID int64
	// IngestBatchID is a freshly generated UUIDv4 identifying this run,
	// used to tag staged rows for later merge/cleanup.
	IngestBatchID uuid.UUID
	// Headers and Rows hold the full sheet content. Episode sheets are a
	// few thousand rows at most, and precheck needs all of them anyway.
	Headers []string
	Rows    []map[string]string
	// AlreadyLoaded is true when the file's sha256 already exists with
	// status "imported" and force mode is off.
	AlreadyLoaded bool
}

// Preflight hashes the file, reads the full sheet, and registers the import
// file record.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	headers, rows, err := csvread.ReadAll(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight read: %w", err)
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int("rows", len(rows)).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	importFileID, alreadyLoaded, err := registerImportFile(ctx, pool, filePath, sha, stat.Size(), force)
	if err != nil {
		return nil, fmt.Errorf("preflight register file: %w", err)
	}

	return &PreflightResult{
		FilePath:      filePath,
		FileSHA256:    sha,
		FileSize:      stat.Size(),
		ImportFileID:  importFileID,
		IngestBatchID: uuid.New(),
		Headers:       headers,
		Rows:          rows,
		AlreadyLoaded: alreadyLoaded,
	}, nil
}

func registerImportFile(ctx context.Context, pool *pgxpool.Pool, filePath, sha string, fileSize int64, force bool) (int64, bool, error) {
	var importFileID int64
	err := pool.QueryRow(ctx, embedsql.RegisterImportFile,
		filepath.Base(filePath), sha, fileSize,
	).Scan(&importFileID)

	if errors.Is(err, pgx.ErrNoRows) {
		// Already exists (ON CONFLICT DO NOTHING returned no rows).
		var status string
		if err2 := pool.QueryRow(ctx, embedsql.LookupImportFile, sha).Scan(&importFileID, &status); err2 != nil {
			return 0, false, fmt.Errorf("lookup existing import file: %w", err2)
		}

		if !force && status == "imported" {
			return importFileID, true, nil
		}

		// Reset status for re-import.
		if _, err3 := pool.Exec(ctx, embedsql.UpdateImportStatus, importFileID, "pending"); err3 != nil {
			return 0, false, fmt.Errorf("reset import status: %w", err3)
		}
		return importFileID, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("register import file: %w", err)
	}

	return importFileID, false, nil
}
