package hazard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"roadcast/internal/apperr"
)

// sqliteTimeLayout is the format CURRENT_TIMESTAMP and datetime() produce.
// SQLite's clock is UTC.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS hazard_reports (
	id            TEXT PRIMARY KEY,
	latitude      REAL NOT NULL,
	longitude     REAL NOT NULL,
	category      TEXT NOT NULL,
	status        TEXT NOT NULL,
	trust_score   REAL NOT NULL,
	confirmations INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	expires_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_hazard_reports_expires_at ON hazard_reports(expires_at);
`

// Store persists hazard reports in SQLite. Creation timestamps are assigned
// by the database, not the caller, and expiry is enforced by query filters.
type Store struct {
	db     *sql.DB
	ttl    time.Duration
	logger *slog.Logger

	subMu       sync.Mutex
	subscribers []chan Report
}

// OpenStore opens (creating if needed) the report database at path.
func OpenStore(path string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL for concurrent readers during writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	// One pooled connection; Apply's read-modify-write transactions rely
	// on it for serialization.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{
		db:     db,
		ttl:    ttl,
		logger: logger.With("component", "hazard-store"),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts the report and returns it with the server-assigned id,
// creation time, and TTL-derived expiry filled in.
func (s *Store) Create(ctx context.Context, r Report) (*Report, error) {
	r.ID = uuid.NewString()

	ttlModifier := fmt.Sprintf("+%d seconds", int(s.ttl.Seconds()))
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hazard_reports (id, latitude, longitude, category, status, trust_score, confirmations, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, datetime('now', ?))`,
		r.ID, r.Location.Latitude, r.Location.Longitude, string(r.Category), string(r.Status), r.TrustScore, r.Confirmations, ttlModifier,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}

	created, err := s.GetByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	s.notify(*created)
	return created, nil
}

// GetByID fetches one report regardless of status or expiry.
func (s *Store) GetByID(ctx context.Context, id string) (*Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, latitude, longitude, category, status, trust_score, confirmations, created_at, expires_at
		FROM hazard_reports WHERE id = ?`, id)

	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", id, err)
	}
	return r, nil
}

// ListActive returns unexpired reports, soonest-to-expire first. Expiry is a
// query-time filter: a report past its TTL is invisible here even before the
// sweep rewrites its stored status.
func (s *Store) ListActive(ctx context.Context, limit int) ([]Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, latitude, longitude, category, status, trust_score, confirmations, created_at, expires_at
		FROM hazard_reports
		WHERE expires_at > datetime('now') AND status != ?
		ORDER BY expires_at ASC
		LIMIT ?`, string(StatusExpired), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			s.logger.Warn("skipping unreadable report row", "error", err)
			continue
		}
		reports = append(reports, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

// Apply loads the report, runs mutate on it, and persists trust score,
// status, and confirmation count in one transaction. Concurrent feedback on
// the same report serializes here, so every vote is counted against the
// state the previous one left behind. Subscribers are notified after
// commit. A mutate error aborts without writing.
func (s *Store) Apply(ctx context.Context, id string, mutate func(*Report) error) (*Report, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx, `
		SELECT id, latitude, longitude, category, status, trust_score, confirmations, created_at, expires_at
		FROM hazard_reports WHERE id = ?`, id)

	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", id, err)
	}

	if err := mutate(r); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE hazard_reports SET trust_score = ?, status = ?, confirmations = ? WHERE id = ?`,
		r.TrustScore, string(r.Status), r.Confirmations, id); err != nil {
		return nil, fmt.Errorf("failed to update report %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update of %s: %w", id, err)
	}

	s.notify(*r)
	return r, nil
}

// MarkExpired rewrites the status of reports past their TTL. Housekeeping
// only; queries already exclude them by expiry time.
func (s *Store) MarkExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE hazard_reports SET status = ?
		WHERE expires_at <= datetime('now') AND status != ?`,
		string(StatusExpired), string(StatusExpired))
	if err != nil {
		return 0, fmt.Errorf("failed to mark expired reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count expired reports: %w", err)
	}
	return n, nil
}

// Subscribe returns a stream of created and updated reports plus a cancel
// function. Slow consumers miss updates rather than blocking writers.
func (s *Store) Subscribe(buffer int) (<-chan Report, func()) {
	ch := make(chan Report, buffer)

	s.subMu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subscribers {
			if sub == ch {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

func (s *Store) notify(r Report) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- r:
		default:
		}
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*Report, error) {
	var (
		r         Report
		category  string
		status    string
		createdAt string
		expiresAt string
	)
	if err := row.Scan(&r.ID, &r.Location.Latitude, &r.Location.Longitude,
		&category, &status, &r.TrustScore, &r.Confirmations, &createdAt, &expiresAt); err != nil {
		return nil, err
	}

	var err error
	if r.Category, err = ParseCategory(category); err != nil {
		return nil, err
	}
	if r.Status, err = ParseStatus(status); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = time.ParseInLocation(sqliteTimeLayout, createdAt, time.UTC); err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	if r.ExpiresAt, err = time.ParseInLocation(sqliteTimeLayout, expiresAt, time.UTC); err != nil {
		return nil, fmt.Errorf("bad expires_at %q: %w", expiresAt, err)
	}
	return &r, nil
}
