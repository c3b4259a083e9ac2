package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saascontratos/contratos/internal/domain"
)

const contractColumns = `id, user_id, title, provider_name, client_name, service_description,
	value, payment_terms, city, status, due_date, created_at, updated_at`

const dueDateLayout = "2006-01-02"

type ContractRepo struct {
	db *sql.DB
}

func NewContractRepo(db *sql.DB) *ContractRepo {
	return &ContractRepo{db: db}
}

// Insert stores c, stamping CreatedAt/UpdatedAt, and sets its ID.
func (r *ContractRepo) Insert(ctx context.Context, c *domain.Contract) error {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contracts
		(user_id, title, provider_name, client_name, service_description,
		 value, payment_terms, city, status, due_date, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		contractArgs(c)...,
	)
	if err != nil {
		return fmt.Errorf("insert contract: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	c.ID = id
	return nil
}

// insertContracts stores contracts inside tx and sets their IDs.
func insertContracts(ctx context.Context, tx *sql.Tx, contracts []domain.Contract) (int, error) {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contracts
		(user_id, title, provider_name, client_name, service_description,
		 value, payment_terms, city, status, due_date, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	inserted := 0
	for i := range contracts {
		c := &contracts[i]
		c.CreatedAt, c.UpdatedAt = now, now
		res, err := stmt.ExecContext(ctx, contractArgs(c)...)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d: %w", i, err)
		}
		if id, err := res.LastInsertId(); err == nil {
			c.ID = id
		}
		inserted++
	}
	return inserted, nil
}

// Update overwrites the editable fields of c. Only the owner's row is
// touched; ErrNotFound is returned otherwise.
func (r *ContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET
			title = ?, provider_name = ?, client_name = ?, service_description = ?,
			value = ?, payment_terms = ?, city = ?, status = ?, due_date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		c.Title, c.ProviderName, c.ClientName, c.ServiceDescription,
		c.Value.StringFixed(2), c.PaymentTerms, c.City, c.Status,
		formatNullableDate(c.DueDate), c.UpdatedAt.Format(timeLayout),
		c.ID, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	return expectAffected(res)
}

// Delete removes the contract if it belongs to userID.
func (r *ContractRepo) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM contracts WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	return expectAffected(res)
}

// GetForUser returns the contract only if it belongs to userID.
func (r *ContractRepo) GetForUser(ctx context.Context, userID, id int64) (*domain.Contract, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+contractColumns+" FROM contracts WHERE id = ? AND user_id = ?", id, userID)
	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *ContractRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contracts").Scan(&count)
	return count, err
}

type ContractFilter struct {
	UserID int64
	Status string
	City   string
	Query  string
	Page   int
	Limit  int
}

// List returns one page of the user's contracts, most recently updated first,
// along with the total number of matching rows.
func (r *ContractRepo) List(ctx context.Context, f ContractFilter) ([]domain.Contract, int, error) {
	where, args := buildContractWhere(f)

	var total int
	countSQL := "SELECT COUNT(*) FROM contracts" + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	offset := (f.Page - 1) * f.Limit

	querySQL := "SELECT " + contractColumns + " FROM contracts" + where +
		" ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, offset)

	rows, err := r.db.QueryContext(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	contracts := []domain.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		contracts = append(contracts, *c)
	}
	return contracts, total, rows.Err()
}

// Stats holds aggregate figures for one user's contracts.
type Stats struct {
	Total      int             `json:"total"`
	ByStatus   map[string]int  `json:"by_status"`
	TotalValue decimal.Decimal `json:"total_value"`
}

func (r *ContractRepo) Stats(ctx context.Context, userID int64) (*Stats, error) {
	s := &Stats{ByStatus: make(map[string]int), TotalValue: decimal.Zero}

	rows, err := r.db.QueryContext(ctx,
		"SELECT status, value FROM contracts WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	// Values are summed here rather than in SQL to keep exact decimals.
	for rows.Next() {
		var status, value string
		if err := rows.Scan(&status, &value); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		v, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("parse value %q: %w", value, err)
		}
		s.Total++
		s.ByStatus[status]++
		s.TotalValue = s.TotalValue.Add(v)
	}
	return s, rows.Err()
}

// --- helpers ---

func contractArgs(c *domain.Contract) []any {
	return []any{
		c.UserID, c.Title, c.ProviderName, c.ClientName, c.ServiceDescription,
		c.Value.StringFixed(2), c.PaymentTerms, c.City, c.Status,
		formatNullableDate(c.DueDate),
		c.CreatedAt.Format(timeLayout), c.UpdatedAt.Format(timeLayout),
	}
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func buildContractWhere(f ContractFilter) (string, []any) {
	clauses := []string{"user_id = ?"}
	args := []any{f.UserID}

	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if f.City != "" {
		clauses = append(clauses, "city = ?")
		args = append(args, f.City)
	}
	if f.Query != "" {
		like := "%" + likeEscaper.Replace(f.Query) + "%"
		clauses = append(clauses,
			`(title LIKE ? ESCAPE '\' OR client_name LIKE ? ESCAPE '\' OR provider_name LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func formatNullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dueDateLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	var c domain.Contract
	var value, createdAt, updatedAt string
	var dueDate sql.NullString

	err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.ProviderName, &c.ClientName,
		&c.ServiceDescription, &value, &c.PaymentTerms, &c.City, &c.Status,
		&dueDate, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Value, err = decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("parse value %q: %w", value, err)
	}
	c.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	c.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)

	if dueDate.Valid {
		t, err := time.Parse(dueDateLayout, dueDate.String)
		if err == nil {
			c.DueDate = &t
		}
	}

	return &c, nil
}
