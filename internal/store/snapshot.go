package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gitwise/internal/models"
	"gitwise/internal/observability"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SnapshotSchemaVersion is the current persisted-state schema. Bump it
// together with a registered migration whenever the record shape or
// the meaning of a field changes.
const SnapshotSchemaVersion = 1

// snapshotRecord is the single persisted session row: the opaque
// bearer token and the JSON-serialized user, versioned so stale
// schemas are migrated or discarded instead of misread.
type snapshotRecord struct {
	ID            uint `gorm:"primaryKey"`
	SchemaVersion int  `gorm:"not null"`
	Token         string
	UserJSON      string
	SavedAt       time.Time
}

func (snapshotRecord) TableName() string { return "snapshots" }

// SnapshotMigration upgrades a record from one schema version to the
// next. Migrations are applied in sequence until the current version
// is reached.
type SnapshotMigration func(*snapshotRecord) error

var snapshotMigrations = map[int]SnapshotMigration{}

// RegisterSnapshotMigration registers the upgrade step from the given
// version to version+1.
func RegisterSnapshotMigration(from int, fn SnapshotMigration) {
	snapshotMigrations[from] = fn
}

// SnapshotStore persists the session to a local sqlite file.
type SnapshotStore struct {
	db *gorm.DB
}

// slogGormLogger integrates GORM with slog, warning on slow queries
// and ignoring ErrRecordNotFound.
type slogGormLogger struct {
	logger *observability.Logger
	level  logger.LogLevel
}

func (l *slogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		l.logger.ErrorContext(ctx, "snapshot query error",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
	case elapsed > 200*time.Millisecond && l.level >= logger.Warn:
		l.logger.WarnContext(ctx, "snapshot slow query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	}
}

// OpenSnapshotStore opens (and migrates) the sqlite snapshot file,
// creating parent directories as needed.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: &slogGormLogger{logger: observability.GlobalLogger, level: logger.Warn},
	})
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	if err := db.AutoMigrate(&snapshotRecord{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot schema: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Save persists the current session, replacing any previous snapshot.
func (s *SnapshotStore) Save(token string, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	rec := snapshotRecord{
		ID:            1,
		SchemaVersion: SnapshotSchemaVersion,
		Token:         token,
		UserJSON:      string(userJSON),
		SavedAt:       time.Now(),
	}
	return s.db.Save(&rec).Error
}

// Load reads the persisted session. ok is false when no valid snapshot
// exists; a snapshot with an unmigratable schema version is discarded
// with a warning, failing closed to logged-out.
func (s *SnapshotStore) Load() (token string, user *models.User, ok bool, err error) {
	var rec snapshotRecord
	if err := s.db.First(&rec, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, false, nil
		}
		return "", nil, false, err
	}

	for rec.SchemaVersion < SnapshotSchemaVersion {
		migrate, found := snapshotMigrations[rec.SchemaVersion]
		if !found {
			break
		}
		if err := migrate(&rec); err != nil {
			return "", nil, false, fmt.Errorf("migrate snapshot from v%d: %w", rec.SchemaVersion, err)
		}
		rec.SchemaVersion++
	}
	if rec.SchemaVersion != SnapshotSchemaVersion {
		observability.GlobalLogger.Warn("discarding snapshot with unknown schema version",
			slog.Int("found", rec.SchemaVersion),
			slog.Int("want", SnapshotSchemaVersion),
		)
		return "", nil, false, s.Clear()
	}

	if rec.Token == "" {
		return "", nil, false, nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(rec.UserJSON), &u); err != nil {
		observability.GlobalLogger.Warn("discarding snapshot with corrupt user payload",
			slog.String("error", err.Error()),
		)
		return "", nil, false, s.Clear()
	}
	return rec.Token, &u, true, nil
}

// Clear removes the persisted session.
func (s *SnapshotStore) Clear() error {
	return s.db.Delete(&snapshotRecord{}, 1).Error
}
