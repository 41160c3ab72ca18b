package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"restaurant-orders/internal/connections/database"
	"restaurant-orders/internal/domain"
)

// SessionRepository persists table sessions. Active-session uniqueness is
// enforced by the store itself (partial unique index on table_number where
// session_end is null), so Create is safe under concurrent callers.
type SessionRepository interface {
	Create(ctx context.Context, tableNumber string, start time.Time) (*domain.TableSession, error)
	FindByID(ctx context.Context, id int64) (*domain.TableSession, error)
	FindActiveByID(ctx context.Context, id int64) (*domain.TableSession, error)
	FindActiveByTable(ctx context.Context, tableNumber string) (*domain.TableSession, error)
	FindActive(ctx context.Context) ([]domain.TableSession, error)
	CloseByID(ctx context.Context, id int64, end time.Time) error
}

const sessionColumns = "id, table_number, session_start, session_end"

type SessionPG struct {
	db *database.Conn
}

func NewSessionPG(db *database.Conn) *SessionPG {
	return &SessionPG{db: db}
}

func (r *SessionPG) Create(ctx context.Context, tableNumber string, start time.Time) (*domain.TableSession, error) {
	s := &domain.TableSession{TableNumber: tableNumber, SessionStart: start}
	err := r.db.QueryRow(ctx, `
		INSERT INTO table_sessions (table_number, session_start)
		VALUES ($1, $2)
		RETURNING id`, tableNumber, start,
	).Scan(&s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrActiveSessionExists
		}
		return nil, fmt.Errorf("failed to insert table session: %w", err)
	}
	return s, nil
}

func (r *SessionPG) FindByID(ctx context.Context, id int64) (*domain.TableSession, error) {
	return r.one(ctx, domain.ErrSessionNotFound, `
		SELECT `+sessionColumns+`
		FROM table_sessions WHERE id = $1`, id)
}

func (r *SessionPG) FindActiveByID(ctx context.Context, id int64) (*domain.TableSession, error) {
	return r.one(ctx, domain.ErrNoActiveTableSession, `
		SELECT `+sessionColumns+`
		FROM table_sessions WHERE id = $1 AND session_end IS NULL`, id)
}

func (r *SessionPG) FindActiveByTable(ctx context.Context, tableNumber string) (*domain.TableSession, error) {
	return r.one(ctx, domain.ErrNoActiveTableSession, `
		SELECT `+sessionColumns+`
		FROM table_sessions WHERE table_number = $1 AND session_end IS NULL`, tableNumber)
}

func (r *SessionPG) FindActive(ctx context.Context) ([]domain.TableSession, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM table_sessions WHERE session_end IS NULL ORDER BY session_start`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.TableSession
	for rows.Next() {
		var s domain.TableSession
		if err := rows.Scan(&s.ID, &s.TableNumber, &s.SessionStart, &s.SessionEnd); err != nil {
			return nil, fmt.Errorf("failed to scan table session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CloseByID only closes a still-open session; a second close finds no row
// and reports that no active session remains.
func (r *SessionPG) CloseByID(ctx context.Context, id int64, end time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE table_sessions SET session_end = $2
		WHERE id = $1 AND session_end IS NULL`, id, end)
	if err != nil {
		return fmt.Errorf("failed to close table session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoActiveTableSession
	}
	return nil
}

func (r *SessionPG) one(ctx context.Context, notFound error, sql string, args ...any) (*domain.TableSession, error) {
	var s domain.TableSession
	err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.TableNumber, &s.SessionStart, &s.SessionEnd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to query table session: %w", err)
	}
	return &s, nil
}
