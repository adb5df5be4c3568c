package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/warikanhq/warikan/internal/payment/split"
)

// Repository handles payment data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithShares inserts a payment and its shares in one transaction
func (r *Repository) CreateWithShares(ctx context.Context, p *Payment, shares []split.Share) (*PaymentWithShares, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO payments (group_id, payer_id, description, amount, date, split_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, group_id, payer_id, description, amount, date, split_type, settled_session_id, created_at
	`

	created := &Payment{}
	err = tx.QueryRowContext(ctx, query,
		p.GroupID, p.PayerID, p.Description, p.Amount, p.Date, p.SplitType,
	).Scan(
		&created.ID,
		&created.GroupID,
		&created.PayerID,
		&created.Description,
		&created.Amount,
		&created.Date,
		&created.SplitType,
		&created.SettledSessionID,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	insertShare := `
		INSERT INTO payment_shares (payment_id, user_id, amount)
		VALUES ($1, $2, $3)
	`

	createdShares := make([]split.Share, len(shares))
	for i, s := range shares {
		if _, err := tx.ExecContext(ctx, insertShare, created.ID, s.UserID, s.Amount); err != nil {
			return nil, fmt.Errorf("failed to create payment share: %w", err)
		}
		createdShares[i] = split.Share{PaymentID: created.ID, UserID: s.UserID, Amount: s.Amount}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	return &PaymentWithShares{Payment: created, Shares: createdShares}, nil
}

// GetByID retrieves a payment by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	query := `
		SELECT p.id, p.group_id, p.payer_id, p.description, p.amount, p.date,
		       p.split_type, p.settled_session_id, p.created_at, u.display_name
		FROM payments p
		JOIN users u ON p.payer_id = u.id
		WHERE p.id = $1
	`

	p := &Payment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.GroupID,
		&p.PayerID,
		&p.Description,
		&p.Amount,
		&p.Date,
		&p.SplitType,
		&p.SettledSessionID,
		&p.CreatedAt,
		&p.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// GetShares retrieves the shares of a payment
func (r *Repository) GetShares(ctx context.Context, paymentID int64) ([]split.Share, error) {
	query := `
		SELECT payment_id, user_id, amount
		FROM payment_shares
		WHERE payment_id = $1
		ORDER BY user_id
	`

	rows, err := r.db.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []split.Share
	for rows.Next() {
		var s split.Share
		if err := rows.Scan(&s.PaymentID, &s.UserID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, s)
	}

	return shares, nil
}

// ListByGroupID retrieves payments for a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Payment, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM payments WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := `
		SELECT p.id, p.group_id, p.payer_id, p.description, p.amount, p.date,
		       p.split_type, p.settled_session_id, p.created_at, u.display_name
		FROM payments p
		JOIN users u ON p.payer_id = u.id
		WHERE p.group_id = $1
		ORDER BY p.date DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// ListUnsettled retrieves payments in the period that no confirmed session covers,
// each with its shares. The period is an inclusive date range.
func (r *Repository) ListUnsettled(ctx context.Context, groupID int64, periodStart, periodEnd time.Time) ([]*PaymentWithShares, error) {
	query := `
		SELECT p.id, p.group_id, p.payer_id, p.description, p.amount, p.date,
		       p.split_type, p.settled_session_id, p.created_at, u.display_name
		FROM payments p
		JOIN users u ON p.payer_id = u.id
		WHERE p.group_id = $1
		  AND p.settled_session_id IS NULL
		  AND p.date >= $2 AND p.date <= $3
		ORDER BY p.date, p.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled payments: %w", err)
	}
	defer rows.Close()

	payments, err := scanPayments(rows)
	if err != nil {
		return nil, err
	}

	result := make([]*PaymentWithShares, 0, len(payments))
	for _, p := range payments {
		shares, err := r.GetShares(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &PaymentWithShares{Payment: p, Shares: shares})
	}

	return result, nil
}

// UnsettledDateBounds returns the oldest and newest unsettled payment dates for
// a group plus the unsettled count. Both dates are nil when nothing is unsettled.
func (r *Repository) UnsettledDateBounds(ctx context.Context, groupID int64) (oldest, newest *time.Time, count int, err error) {
	query := `
		SELECT MIN(date), MAX(date), COUNT(*)
		FROM payments
		WHERE group_id = $1 AND settled_session_id IS NULL
	`

	var minDate, maxDate sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&minDate, &maxDate, &count); err != nil {
		return nil, nil, 0, fmt.Errorf("failed to get unsettled bounds: %w", err)
	}

	if minDate.Valid {
		oldest = &minDate.Time
	}
	if maxDate.Valid {
		newest = &maxDate.Time
	}

	return oldest, newest, count, nil
}

// HasUnsettledOnDate reports whether any unsettled payment exists on the exact date
func (r *Repository) HasUnsettledOnDate(ctx context.Context, groupID int64, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE group_id = $1 AND settled_session_id IS NULL AND date = $2
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, groupID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check unsettled date: %w", err)
	}

	return exists, nil
}

// UpdateWithShares rewrites a payment and replaces its shares in one transaction
func (r *Repository) UpdateWithShares(ctx context.Context, p *Payment, shares []split.Share) (*PaymentWithShares, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE payments
		SET description = $2, amount = $3, date = $4
		WHERE id = $1 AND settled_session_id IS NULL
		RETURNING id, group_id, payer_id, description, amount, date, split_type, settled_session_id, created_at
	`

	updated := &Payment{}
	err = tx.QueryRowContext(ctx, query, p.ID, p.Description, p.Amount, p.Date).Scan(
		&updated.ID,
		&updated.GroupID,
		&updated.PayerID,
		&updated.Description,
		&updated.Amount,
		&updated.Date,
		&updated.SplitType,
		&updated.SettledSessionID,
		&updated.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM payment_shares WHERE payment_id = $1`, p.ID); err != nil {
		return nil, fmt.Errorf("failed to clear payment shares: %w", err)
	}

	insertShare := `
		INSERT INTO payment_shares (payment_id, user_id, amount)
		VALUES ($1, $2, $3)
	`
	for _, s := range shares {
		if _, err := tx.ExecContext(ctx, insertShare, p.ID, s.UserID, s.Amount); err != nil {
			return nil, fmt.Errorf("failed to create payment share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment update: %w", err)
	}

	return &PaymentWithShares{Payment: updated, Shares: shares}, nil
}

// Delete removes an unsettled payment and its shares
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM payments WHERE id = $1 AND settled_session_id IS NULL`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete payment: %w", err)
	}

	return affected > 0, nil
}

// MarkSettled stamps the given payments as covered by a confirmed session
func (r *Repository) MarkSettled(ctx context.Context, tx *sql.Tx, sessionID int64, paymentIDs []int64) error {
	query := `
		UPDATE payments SET settled_session_id = $1
		WHERE id = ANY($2) AND settled_session_id IS NULL
	`

	if _, err := tx.ExecContext(ctx, query, sessionID, pq.Array(paymentIDs)); err != nil {
		return fmt.Errorf("failed to mark payments settled: %w", err)
	}

	return nil
}

func scanPayments(rows *sql.Rows) ([]*Payment, error) {
	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		if err := rows.Scan(
			&p.ID, &p.GroupID, &p.PayerID, &p.Description, &p.Amount, &p.Date,
			&p.SplitType, &p.SettledSessionID, &p.CreatedAt, &p.PayerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}
