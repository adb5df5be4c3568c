package settlement

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/warikanhq/warikan/internal/payment"
)

// Repository handles settlement data persistence
type Repository struct {
	db       *sql.DB
	payments *payment.Repository
}

// NewRepository creates a new settlement repository. The payment repository
// is needed so confirming a session can stamp its payments settled inside
// the same transaction.
func NewRepository(db *sql.DB, payments *payment.Repository) *Repository {
	return &Repository{db: db, payments: payments}
}

// CreateSession inserts a new draft session
func (r *Repository) CreateSession(ctx context.Context, groupID int64, periodStart, periodEnd time.Time) (*Session, error) {
	query := `
		INSERT INTO settlement_sessions (public_id, group_id, period_start, period_end, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, public_id, group_id, period_start, period_end, status, created_at
	`

	session := &Session{}
	err := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), groupID, periodStart, periodEnd, SessionStatusDraft,
	).Scan(
		&session.ID,
		&session.PublicID,
		&session.GroupID,
		&session.PeriodStart,
		&session.PeriodEnd,
		&session.Status,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetSession retrieves a session by its ID
func (r *Repository) GetSession(ctx context.Context, id int64) (*Session, error) {
	query := `
		SELECT id, public_id, group_id, period_start, period_end, status, created_at
		FROM settlement_sessions
		WHERE id = $1
	`

	session := &Session{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.PublicID,
		&session.GroupID,
		&session.PeriodStart,
		&session.PeriodEnd,
		&session.Status,
		&session.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// ListSessionsByGroupID retrieves a group's sessions, newest period first
func (r *Repository) ListSessionsByGroupID(ctx context.Context, groupID int64) ([]*Session, error) {
	query := `
		SELECT id, public_id, group_id, period_start, period_end, status, created_at
		FROM settlement_sessions
		WHERE group_id = $1
		ORDER BY period_end DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// LastConfirmedSession returns the group's session with the latest period end
// that made it past draft, or nil when none exists
func (r *Repository) LastConfirmedSession(ctx context.Context, groupID int64) (*Session, error) {
	query := `
		SELECT id, public_id, group_id, period_start, period_end, status, created_at
		FROM settlement_sessions
		WHERE group_id = $1 AND status <> $2
		ORDER BY period_end DESC, id DESC
		LIMIT 1
	`

	session := &Session{}
	err := r.db.QueryRowContext(ctx, query, groupID, SessionStatusDraft).Scan(
		&session.ID,
		&session.PublicID,
		&session.GroupID,
		&session.PeriodStart,
		&session.PeriodEnd,
		&session.Status,
		&session.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last confirmed session: %w", err)
	}

	return session, nil
}

// UpdateSessionStatus sets a session's status
func (r *Repository) UpdateSessionStatus(ctx context.Context, id int64, status SessionStatus) (*Session, error) {
	query := `
		UPDATE settlement_sessions SET status = $2
		WHERE id = $1
		RETURNING id, public_id, group_id, period_start, period_end, status, created_at
	`

	session := &Session{}
	err := r.db.QueryRowContext(ctx, query, id, status).Scan(
		&session.ID,
		&session.PublicID,
		&session.GroupID,
		&session.PeriodStart,
		&session.PeriodEnd,
		&session.Status,
		&session.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update session status: %w", err)
	}

	return session, nil
}

// GetEntries retrieves a session's entries ordered by date
func (r *Repository) GetEntries(ctx context.Context, sessionID int64) ([]Entry, error) {
	query := `
		SELECT id, session_id, source_type, source_id, date, description,
		       payer_id, beneficiary_id, split_type, expected_amount, actual_amount, status
		FROM settlement_entries
		WHERE session_id = $1
		ORDER BY date, id
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// GetEntry retrieves one entry by its ID
func (r *Repository) GetEntry(ctx context.Context, entryID int64) (*Entry, error) {
	query := `
		SELECT id, session_id, source_type, source_id, date, description,
		       payer_id, beneficiary_id, split_type, expected_amount, actual_amount, status
		FROM settlement_entries
		WHERE id = $1
	`

	e := &Entry{}
	err := r.db.QueryRowContext(ctx, query, entryID).Scan(
		&e.ID, &e.SessionID, &e.SourceType, &e.SourceID, &e.Date, &e.Description,
		&e.PayerID, &e.BeneficiaryID, &e.SplitType, &e.ExpectedAmount, &e.ActualAmount, &e.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return e, nil
}

// ApplyEntryDiff applies a refresh diff in one transaction and returns how
// many entries were inserted
func (r *Repository) ApplyEntryDiff(ctx context.Context, sessionID int64, diff EntryDiff) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if len(diff.ToDelete) > 0 {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM settlement_entries WHERE session_id = $1 AND id = ANY($2)`,
			sessionID, pq.Array(diff.ToDelete))
		if err != nil {
			return 0, fmt.Errorf("failed to delete entries: %w", err)
		}
	}

	updateQuery := `
		UPDATE settlement_entries
		SET date = $2, description = $3, payer_id = $4, beneficiary_id = $5,
		    split_type = $6, expected_amount = $7
		WHERE id = $1
	`
	for _, e := range diff.ToUpdate {
		_, err := tx.ExecContext(ctx, updateQuery,
			e.ID, e.Date, e.Description, e.PayerID, e.BeneficiaryID, e.SplitType, e.ExpectedAmount)
		if err != nil {
			return 0, fmt.Errorf("failed to update entry: %w", err)
		}
	}

	insertQuery := `
		INSERT INTO settlement_entries
			(session_id, source_type, source_id, date, description,
			 payer_id, beneficiary_id, split_type, expected_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, o := range diff.ToInsert {
		_, err := tx.ExecContext(ctx, insertQuery,
			sessionID, o.SourceType, o.SourceID, o.Date, o.Description,
			o.PayerID, o.BeneficiaryID, o.SplitType, o.ExpectedAmount, EntryStatusPending)
		if err != nil {
			return 0, fmt.Errorf("failed to insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit entry diff: %w", err)
	}

	return len(diff.ToInsert), nil
}

// UpdateEntryResolution sets an entry's resolution status and actual amount
func (r *Repository) UpdateEntryResolution(ctx context.Context, entryID int64, status EntryStatus, actualAmount *int64) (*Entry, error) {
	query := `
		UPDATE settlement_entries
		SET status = $2, actual_amount = $3
		WHERE id = $1
		RETURNING id, session_id, source_type, source_id, date, description,
		          payer_id, beneficiary_id, split_type, expected_amount, actual_amount, status
	`

	e := &Entry{}
	err := r.db.QueryRowContext(ctx, query, entryID, status, actualAmount).Scan(
		&e.ID, &e.SessionID, &e.SourceType, &e.SourceID, &e.Date, &e.Description,
		&e.PayerID, &e.BeneficiaryID, &e.SplitType, &e.ExpectedAmount, &e.ActualAmount, &e.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update entry resolution: %w", err)
	}

	return e, nil
}

// ConfirmSession persists the solved transfers, stamps the covered payments
// settled and advances the session to confirmed, atomically. Only a draft
// session can be confirmed.
func (r *Repository) ConfirmSession(ctx context.Context, sessionID int64, transfers []NetTransfer, settledPaymentIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE settlement_sessions SET status = $2 WHERE id = $1 AND status = $3`,
		sessionID, SessionStatusConfirmed, SessionStatusDraft)
	if err != nil {
		return fmt.Errorf("failed to confirm session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm session: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotDraft
	}

	insertTransfer := `
		INSERT INTO net_transfers (session_id, from_user_id, to_user_id, amount)
		VALUES ($1, $2, $3, $4)
	`
	for _, t := range transfers {
		if _, err := tx.ExecContext(ctx, insertTransfer, sessionID, t.FromID, t.ToID, t.Amount); err != nil {
			return fmt.Errorf("failed to insert transfer: %w", err)
		}
	}

	if len(settledPaymentIDs) > 0 {
		if err := r.payments.MarkSettled(ctx, tx, sessionID, settledPaymentIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session confirm: %w", err)
	}

	return nil
}

// GetTransfers retrieves a session's confirmed transfers with member names
func (r *Repository) GetTransfers(ctx context.Context, sessionID int64) ([]NetTransfer, error) {
	query := `
		SELECT t.from_user_id, uf.display_name, t.to_user_id, ut.display_name, t.amount
		FROM net_transfers t
		JOIN users uf ON t.from_user_id = uf.id
		JOIN users ut ON t.to_user_id = ut.id
		WHERE t.session_id = $1
		ORDER BY t.id
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfers: %w", err)
	}
	defer rows.Close()

	transfers := []NetTransfer{}
	for rows.Next() {
		var t NetTransfer
		if err := rows.Scan(&t.FromID, &t.FromName, &t.ToID, &t.ToName, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, t)
	}

	return transfers, nil
}

// GetTransfersByGroupID retrieves the transfer lists of the group's sessions
// in the given statuses, one list per session, oldest session first
func (r *Repository) GetTransfersByGroupID(ctx context.Context, groupID int64, statuses []SessionStatus) ([][]NetTransfer, error) {
	sessionQuery := `
		SELECT id FROM settlement_sessions
		WHERE group_id = $1 AND status = ANY($2)
		ORDER BY period_end, id
	`

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	rows, err := r.db.QueryContext(ctx, sessionQuery, groupID, pq.Array(statusStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for transfers: %w", err)
	}
	defer rows.Close()

	var sessionIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		sessionIDs = append(sessionIDs, id)
	}
	rows.Close()

	result := make([][]NetTransfer, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		transfers, err := r.GetTransfers(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, transfers)
	}

	return result, nil
}

func scanSessions(rows *sql.Rows) ([]*Session, error) {
	var sessions []*Session
	for rows.Next() {
		s := &Session{}
		if err := rows.Scan(
			&s.ID, &s.PublicID, &s.GroupID, &s.PeriodStart, &s.PeriodEnd, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func scanEntry(rows *sql.Rows, e *Entry) error {
	if err := rows.Scan(
		&e.ID, &e.SessionID, &e.SourceType, &e.SourceID, &e.Date, &e.Description,
		&e.PayerID, &e.BeneficiaryID, &e.SplitType, &e.ExpectedAmount, &e.ActualAmount, &e.Status,
	); err != nil {
		return fmt.Errorf("failed to scan entry: %w", err)
	}
	return nil
}
