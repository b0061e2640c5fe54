package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/studytracker/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- StudyLogRepository ---

func (p *PostgresStorage) SaveStudyLog(ctx context.Context, log *internal.StudyLog) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO study_logs (id, title, minutes, date, user_id, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		log.ID, log.Title, log.Minutes, log.Date, log.UserID, log.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert study log: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListStudyLogs(ctx context.Context, userID string) ([]internal.StudyLog, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, title, minutes, date, user_id, created_at FROM study_logs WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query study logs: %v", err)
		return nil, err
	}
	defer rows.Close()

	logs := []internal.StudyLog{}
	for rows.Next() {
		var l internal.StudyLog
		if err := rows.Scan(&l.ID, &l.Title, &l.Minutes, &l.Date, &l.UserID, &l.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan study log: %v", err)
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (p *PostgresStorage) DeleteStudyLog(ctx context.Context, id, userID string) (int64, error) {
	// Ownership enforced in the filter itself, never via read-then-check.
	ct, err := p.pool.Exec(ctx, `DELETE FROM study_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete study log: %v", err)
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// --- MilestoneRepository ---

func (p *PostgresStorage) ListMilestones(ctx context.Context, userID string) ([]internal.MilestoneRecord, error) {
	rows, err := p.pool.Query(ctx, `SELECT user_id, milestone_type, achieved_at FROM milestones WHERE user_id = $1 ORDER BY achieved_at`, userID)
	if err != nil {
		p.logger.Errorf("failed to query milestones: %v", err)
		return nil, err
	}
	defer rows.Close()

	records := []internal.MilestoneRecord{}
	for rows.Next() {
		var m internal.MilestoneRecord
		if err := rows.Scan(&m.UserID, &m.MilestoneType, &m.AchievedAt); err != nil {
			p.logger.Errorf("failed to scan milestone: %v", err)
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

func (p *PostgresStorage) SaveMilestones(ctx context.Context, records []internal.MilestoneRecord) error {
	for _, m := range records {
		_, err := p.pool.Exec(ctx, `INSERT INTO milestones (user_id, milestone_type, achieved_at) VALUES ($1, $2, $3) ON CONFLICT (user_id, milestone_type) DO NOTHING`,
			m.UserID, m.MilestoneType, m.AchievedAt)
		if err != nil {
			p.logger.Errorf("failed to insert milestone: %v", err)
			return err
		}
	}
	return nil
}

func (p *PostgresStorage) DeleteMilestones(ctx context.Context, userID string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM milestones WHERE user_id = $1`, userID)
	if err != nil {
		p.logger.Errorf("failed to delete milestones: %v", err)
	}
	return err
}

// --- SettingsRepository ---

func (p *PostgresStorage) GetSettings(ctx context.Context, userID string) (*internal.ReminderSettings, error) {
	row := p.pool.QueryRow(ctx, `SELECT user_id, reminder_enabled, reminder_time, reminder_type, reminder_days, updated_at FROM user_settings WHERE user_id = $1`, userID)
	st, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to query user settings: %v", err)
		return nil, err
	}
	return st, nil
}

func (p *PostgresStorage) UpsertSettings(ctx context.Context, settings *internal.ReminderSettings) (*internal.ReminderSettings, error) {
	row := p.pool.QueryRow(ctx, `INSERT INTO user_settings (user_id, reminder_enabled, reminder_time, reminder_type, reminder_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET reminder_enabled = $2, reminder_time = $3, reminder_type = $4, reminder_days = $5, updated_at = $6
		RETURNING user_id, reminder_enabled, reminder_time, reminder_type, reminder_days, updated_at`,
		settings.UserID, settings.Enabled, settings.Time, settings.Type, strings.Join(settings.Days, ","), settings.UpdatedAt)
	st, err := scanSettings(row)
	if err != nil {
		p.logger.Errorf("failed to upsert user settings: %v", err)
		return nil, err
	}
	return st, nil
}

func (p *PostgresStorage) ListEnabledSettings(ctx context.Context) ([]internal.ReminderSettings, error) {
	rows, err := p.pool.Query(ctx, `SELECT user_id, reminder_enabled, reminder_time, reminder_type, reminder_days, updated_at FROM user_settings WHERE reminder_enabled`)
	if err != nil {
		p.logger.Errorf("failed to query enabled settings: %v", err)
		return nil, err
	}
	defer rows.Close()

	result := []internal.ReminderSettings{}
	for rows.Next() {
		st, err := scanSettings(rows)
		if err != nil {
			p.logger.Errorf("failed to scan user settings: %v", err)
			return nil, err
		}
		result = append(result, *st)
	}
	return result, rows.Err()
}

// reminder_days is stored as a comma-joined string of weekday codes.
func scanSettings(row pgx.Row) (*internal.ReminderSettings, error) {
	var st internal.ReminderSettings
	var days string
	if err := row.Scan(&st.UserID, &st.Enabled, &st.Time, &st.Type, &days, &st.UpdatedAt); err != nil {
		return nil, err
	}
	if days != "" {
		st.Days = strings.Split(days, ",")
	} else {
		st.Days = []string{}
	}
	return &st, nil
}

// --- Compile-time assertions ---
var _ Store = (*PostgresStorage)(nil)
