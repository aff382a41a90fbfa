package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"preconstruction/models"
)

// Storage: журнал записей синхронизации в Postgres.
// Мок-хранилище живёт в памяти; сюда попадает только копия журнала.
type Storage struct {
	db *sqlx.DB
}

// NewStorage оборачивает подключение к Postgres
func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// SyncLogRecord: строка таблицы sync_log_journal
type SyncLogRecord struct {
	JournalID  int64     `db:"journal_id" json:"journal_id"`
	LogID      int       `db:"log_id" json:"log_id"`
	ProjectID  int       `db:"project_id" json:"project_id"`
	Type       string    `db:"type" json:"type"`
	Status     string    `db:"status" json:"status"`
	Message    string    `db:"message" json:"message"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// RecordSyncLog сохраняет копию записи журнала
func (s *Storage) RecordSyncLog(ctx context.Context, e models.SyncLogEntry) error {
	query := `
        INSERT INTO sync_log_journal (log_id, project_id, type, status, message, created_at)
        VALUES (:log_id, :project_id, :type, :status, :message, :created_at)`
	_, err := s.db.NamedExecContext(ctx, query, SyncLogRecord{
		LogID:     e.ID,
		ProjectID: e.ProjectID,
		Type:      e.Type,
		Status:    e.Status,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	})
	return err
}

// ProjectSyncLogs возвращает последние записи журнала проекта, новые первыми
func (s *Storage) ProjectSyncLogs(ctx context.Context, projectID, limit int) ([]SyncLogRecord, error) {
	query := `
        SELECT journal_id, log_id, project_id, type, status, message, created_at, recorded_at
        FROM sync_log_journal
        WHERE project_id = $1
        ORDER BY created_at DESC, journal_id DESC
        LIMIT $2`
	records := []SyncLogRecord{}
	err := s.db.SelectContext(ctx, &records, query, projectID, limit)
	return records, err
}
