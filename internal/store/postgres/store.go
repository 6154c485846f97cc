// Package postgres implements core.Store on PostgreSQL via pgx. Update*
// operations load the record inside a transaction with SELECT ... FOR UPDATE,
// apply the mutate function, and write back. Concurrent mutations against the
// same ID serialize on the row lock, so no writer ever commits over state it
// did not read.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"retail-ledger/internal/core"
)

type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store over an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ core.Store = (*Store)(nil)

func notFound(what, id string) error {
	return &core.Error{Kind: core.KindNotFound, Msg: fmt.Sprintf("%s %s not found", what, id)}
}

// ── Ledgers ───────────────────────────────────────────────────────────────────

func (s *Store) CreateLedger(ctx context.Context, l *core.Ledger) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertLedger(ctx, tx, l); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit ledger: %w", err)
	}
	return nil
}

func insertLedger(ctx context.Context, tx pgx.Tx, l *core.Ledger) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO ledgers (id, kind, discount, tax, subtotal, total, given_away, finalized, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.Kind, l.Discount, l.Tax, l.Subtotal, l.Total, l.GivenAway, l.Finalized, l.CreatedBy, l.CreatedAt, l.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert ledger: %w", err)
	}
	return insertLedgerLines(ctx, tx, l)
}

func insertLedgerLines(ctx context.Context, tx pgx.Tx, l *core.Ledger) error {
	for i := range l.Lines {
		line := &l.Lines[i]
		if _, err := tx.Exec(ctx, `
			INSERT INTO ledger_lines (id, ledger_id, position, sku, name, unit_price, quantity,
			                          discount_percent, line_total, status, reason, available_quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			line.ID, l.ID, i, line.SKU, line.Name, line.UnitPrice, line.Quantity,
			line.DiscountPercent, line.LineTotal, line.Status, line.Reason, line.AvailableQuantity,
		); err != nil {
			return fmt.Errorf("insert ledger line %d: %w", i, err)
		}
	}
	return nil
}

func scanLedger(ctx context.Context, q pgx.Tx, id string, forUpdate bool) (*core.Ledger, error) {
	query := `
		SELECT id, kind, discount, tax, subtotal, total, given_away, finalized, created_by, created_at, updated_at
		FROM ledgers WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	l := &core.Ledger{}
	if err := q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Kind, &l.Discount, &l.Tax, &l.Subtotal, &l.Total, &l.GivenAway,
		&l.Finalized, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("ledger", id)
		}
		return nil, fmt.Errorf("get ledger %s: %w", id, err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, sku, name, unit_price, quantity, discount_percent, line_total, status, reason, available_quantity
		FROM ledger_lines WHERE ledger_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger lines for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line core.LineItem
		if err := rows.Scan(&line.ID, &line.SKU, &line.Name, &line.UnitPrice, &line.Quantity,
			&line.DiscountPercent, &line.LineTotal, &line.Status, &line.Reason, &line.AvailableQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan ledger line: %w", err)
		}
		l.Lines = append(l.Lines, line)
	}
	return l, rows.Err()
}

func (s *Store) GetLedger(ctx context.Context, id string) (*core.Ledger, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)
	return scanLedger(ctx, tx, id, false)
}

func (s *Store) UpdateLedger(ctx context.Context, id string, mutate func(*core.Ledger) error) (*core.Ledger, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	l, err := scanLedger(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	if err := mutate(l); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE ledgers
		SET discount = $1, tax = $2, subtotal = $3, total = $4, given_away = $5, finalized = $6, updated_at = $7
		WHERE id = $8`,
		l.Discount, l.Tax, l.Subtotal, l.Total, l.GivenAway, l.Finalized, l.UpdatedAt, id,
	); err != nil {
		return nil, fmt.Errorf("update ledger %s: %w", id, err)
	}

	// Lines are few per ledger; rewriting them keeps positions and merges simple.
	if _, err := tx.Exec(ctx, "DELETE FROM ledger_lines WHERE ledger_id = $1", id); err != nil {
		return nil, fmt.Errorf("clear ledger lines for %s: %w", id, err)
	}
	if err := insertLedgerLines(ctx, tx, l); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit ledger update: %w", err)
	}
	return l, nil
}

func (s *Store) ListLedgers(ctx context.Context, kind core.LedgerKind) ([]core.Ledger, error) {
	query := `SELECT id FROM ledgers`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan ledger id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []core.Ledger
	for _, id := range ids {
		l, err := s.GetLedger(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, nil
}

// ── Purchase requests ─────────────────────────────────────────────────────────

func (s *Store) CreateRequest(ctx context.Context, r *core.PurchaseRequest) error {
	snapshot, err := json.Marshal(r.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal request snapshot: %w", err)
	}
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO purchase_requests (id, snapshot, subtotal, charges, status, customer_name, submitted_by, submitted_at, unlocked_at, paid_at, method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, snapshot, r.Subtotal, r.Charges, r.Status, r.CustomerName, r.SubmittedBy, r.SubmittedAt, r.UnlockedAt, r.PaidAt, r.Method,
	); err != nil {
		return fmt.Errorf("insert purchase request: %w", err)
	}
	return nil
}

func scanRequest(ctx context.Context, q pgx.Tx, id string, forUpdate bool) (*core.PurchaseRequest, error) {
	query := `
		SELECT id, snapshot, subtotal, charges, status, customer_name, submitted_by, submitted_at, unlocked_at, paid_at, method
		FROM purchase_requests WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	r := &core.PurchaseRequest{}
	var snapshot []byte
	if err := q.QueryRow(ctx, query, id).Scan(
		&r.ID, &snapshot, &r.Subtotal, &r.Charges, &r.Status, &r.CustomerName,
		&r.SubmittedBy, &r.SubmittedAt, &r.UnlockedAt, &r.PaidAt, &r.Method,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("request", id)
		}
		return nil, fmt.Errorf("get request %s: %w", id, err)
	}
	if err := json.Unmarshal(snapshot, &r.Snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal request snapshot: %w", err)
	}
	return r, nil
}

func (s *Store) GetRequest(ctx context.Context, id string) (*core.PurchaseRequest, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)
	return scanRequest(ctx, tx, id, false)
}

func (s *Store) UpdateRequest(ctx context.Context, id string, mutate func(*core.PurchaseRequest) error) (*core.PurchaseRequest, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	r, err := scanRequest(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	if err := mutate(r); err != nil {
		return nil, err
	}

	// The snapshot column never changes after insert; only workflow fields update.
	if _, err := tx.Exec(ctx, `
		UPDATE purchase_requests
		SET charges = $1, status = $2, unlocked_at = $3, paid_at = $4, method = $5
		WHERE id = $6`,
		r.Charges, r.Status, r.UnlockedAt, r.PaidAt, r.Method, id,
	); err != nil {
		return nil, fmt.Errorf("update request %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit request update: %w", err)
	}
	return r, nil
}

func (s *Store) ListRequests(ctx context.Context, status core.RequestStatus) ([]core.PurchaseRequest, error) {
	query := `
		SELECT id, snapshot, subtotal, charges, status, customer_name, submitted_by, submitted_at, unlocked_at, paid_at, method
		FROM purchase_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY submitted_at`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var out []core.PurchaseRequest
	for rows.Next() {
		var r core.PurchaseRequest
		var snapshot []byte
		if err := rows.Scan(&r.ID, &snapshot, &r.Subtotal, &r.Charges, &r.Status, &r.CustomerName,
			&r.SubmittedBy, &r.SubmittedAt, &r.UnlockedAt, &r.PaidAt, &r.Method,
		); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		if err := json.Unmarshal(snapshot, &r.Snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal request snapshot: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ── Obligations ───────────────────────────────────────────────────────────────
//
// RemainingBalance and Status are never stored: they are recomputed from the
// settlement rows on every load, so the derived values cannot drift.

func deriveObligation(o *core.Obligation) {
	paid := decimal.Zero
	for i := range o.Settlements {
		paid = paid.Add(o.Settlements[i].Amount)
	}
	o.RemainingBalance = core.ClampNonNegative(o.OriginalAmount.Sub(paid))
	o.Status = core.DeriveObligationStatus(o.OriginalAmount, o.RemainingBalance)
}

func (s *Store) CreateObligation(ctx context.Context, o *core.Obligation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO obligations (id, side, counterparty_name, original_amount, source_request_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.Side, o.CounterpartyName, o.OriginalAmount, o.SourceRequestID, o.CreatedAt, o.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert obligation: %w", err)
	}
	if err := insertSettlements(ctx, tx, o.ID, o.Settlements, 0); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit obligation: %w", err)
	}
	return nil
}

func insertSettlements(ctx context.Context, tx pgx.Tx, obligationID string, records []core.SettlementRecord, from int) error {
	for i := from; i < len(records); i++ {
		rec := &records[i]
		if _, err := tx.Exec(ctx, `
			INSERT INTO settlement_records (id, obligation_id, position, amount, recorded_at, method, reference, recorded_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rec.ID, obligationID, i, rec.Amount, rec.Date, rec.Method, rec.Reference, rec.RecordedBy,
		); err != nil {
			return fmt.Errorf("insert settlement record %d: %w", i, err)
		}
	}
	return nil
}

func scanObligation(ctx context.Context, q pgx.Tx, id string, forUpdate bool) (*core.Obligation, error) {
	query := `
		SELECT id, side, counterparty_name, original_amount, source_request_id, created_at, updated_at
		FROM obligations WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	o := &core.Obligation{}
	if err := q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Side, &o.CounterpartyName, &o.OriginalAmount, &o.SourceRequestID, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("obligation", id)
		}
		return nil, fmt.Errorf("get obligation %s: %w", id, err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, amount, recorded_at, method, reference, recorded_by
		FROM settlement_records WHERE obligation_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch settlements for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec core.SettlementRecord
		if err := rows.Scan(&rec.ID, &rec.Amount, &rec.Date, &rec.Method, &rec.Reference, &rec.RecordedBy); err != nil {
			return nil, fmt.Errorf("scan settlement record: %w", err)
		}
		o.Settlements = append(o.Settlements, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	deriveObligation(o)
	return o, nil
}

func (s *Store) GetObligation(ctx context.Context, id string) (*core.Obligation, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)
	return scanObligation(ctx, tx, id, false)
}

func (s *Store) UpdateObligation(ctx context.Context, id string, mutate func(*core.Obligation) error) (*core.Obligation, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	o, err := scanObligation(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	before := len(o.Settlements)
	if err := mutate(o); err != nil {
		return nil, err
	}
	if len(o.Settlements) < before {
		return nil, &core.Error{Kind: core.KindState, Msg: "settlement records are append-only"}
	}

	// Persist only appended records; existing rows never change.
	if err := insertSettlements(ctx, tx, id, o.Settlements, before); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx,
		"UPDATE obligations SET updated_at = $1 WHERE id = $2", o.UpdatedAt, id,
	); err != nil {
		return nil, fmt.Errorf("update obligation %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit obligation update: %w", err)
	}
	deriveObligation(o)
	return o, nil
}

func (s *Store) ListObligations(ctx context.Context, side core.ObligationSide, status core.ObligationStatus) ([]core.Obligation, error) {
	query := `SELECT id FROM obligations`
	args := []any{}
	if side != "" {
		query += ` WHERE side = $1`
		args = append(args, side)
	}
	query += ` ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list obligations: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan obligation id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []core.Obligation
	for _, id := range ids {
		o, err := s.GetObligation(ctx, id)
		if err != nil {
			return nil, err
		}
		// Status filtering happens after derivation; it is never a column.
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (s *Store) GetItem(ctx context.Context, sku string) (*core.AvailableItem, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	item := &core.AvailableItem{}
	if err := s.pool.QueryRow(ctx,
		"SELECT sku, name, available_quantity, unit_price FROM items WHERE sku = $1", sku,
	).Scan(&item.SKU, &item.Name, &item.AvailableQuantity, &item.UnitPrice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("item", sku)
		}
		return nil, fmt.Errorf("get item %s: %w", sku, err)
	}
	return item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]core.AvailableItem, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT sku, name, available_quantity, unit_price FROM items ORDER BY sku")
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []core.AvailableItem
	for rows.Next() {
		var item core.AvailableItem
		if err := rows.Scan(&item.SKU, &item.Name, &item.AvailableQuantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) PutItem(ctx context.Context, item core.AvailableItem) error {
	sku := strings.ToUpper(strings.TrimSpace(item.SKU))
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO items (sku, name, available_quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sku) DO UPDATE
		SET name = EXCLUDED.name, available_quantity = EXCLUDED.available_quantity, unit_price = EXCLUDED.unit_price`,
		sku, item.Name, item.AvailableQuantity, item.UnitPrice,
	); err != nil {
		return fmt.Errorf("put item %s: %w", sku, err)
	}
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u := &core.User{}
	if err := s.pool.QueryRow(ctx, `
		SELECT id, email, full_name, designation, password_hash, created_at
		FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.Designation, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("user", email)
		}
		return nil, fmt.Errorf("get user %s: %w", email, err)
	}
	return u, nil
}

func (s *Store) PutUser(ctx context.Context, u *core.User) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, full_name, designation, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET full_name = EXCLUDED.full_name, designation = EXCLUDED.designation, password_hash = EXCLUDED.password_hash`,
		u.ID, u.Email, u.FullName, u.Designation, u.PasswordHash, u.CreatedAt,
	); err != nil {
		return fmt.Errorf("put user %s: %w", u.Email, err)
	}
	return nil
}
