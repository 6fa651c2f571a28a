package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"krua/internal/domain"
	apperrors "krua/internal/errors"
)

// ListFilter narrows a FindMany scan. Zero values mean "no filter".
type ListFilter struct {
	Status string
	// Day matches orders created within that calendar day, local time.
	Day *time.Time
}

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, code, customerNote, pickupTime, totalAmount, status, createdAt, updatedAt`

// Insert persists an order and its line items in one transaction. The unique
// index on Orders.code is the authoritative uniqueness guard; a violation
// surfaces as DuplicateKeyError so the caller can re-allocate.
func (r *MySQLOrderRepository) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning insert transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO Orders (code, customerNote, pickupTime, totalAmount, status)
		VALUES (?, ?, ?, ?, ?)`,
		order.Code, order.CustomerNote, order.PickupTime, order.TotalAmount, order.Status,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, apperrors.NewDuplicateKeyError(fmt.Sprintf("order code %s already exists", order.Code))
		}
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inserted order id: %w", err)
	}

	for _, item := range order.LineItems {
		var category any
		if item.Category != "" {
			category = item.Category
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO OrderItems (orderId, name, category, quantity, unitPrice, lineTotal)
			VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, item.Name, category, item.Quantity, item.UnitPrice, item.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting order item %q: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isDuplicateKeyError(err) {
			return nil, apperrors.NewDuplicateKeyError(fmt.Sprintf("order code %s already exists", order.Code))
		}
		return nil, fmt.Errorf("committing insert: %w", err)
	}

	// Re-read to pick up the DB-assigned timestamps.
	return r.FindByCode(ctx, order.Code)
}

func (r *MySQLOrderRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM Orders WHERE code = ?`, code).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking code existence: %w", err)
	}
	return true, nil
}

func (r *MySQLOrderRepository) FindByCode(ctx context.Context, code string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE code = ?`, orderColumns)

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&order.ID, &order.Code, &order.CustomerNote, &order.PickupTime,
		&order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with code %s not found", code))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by code: %w", err)
	}

	items, err := r.loadLineItems(ctx, []uint{order.ID})
	if err != nil {
		return nil, err
	}
	order.LineItems = items[order.ID]

	return &order, nil
}

// FindMany returns orders matching the filter, newest first.
func (r *MySQLOrderRepository) FindMany(ctx context.Context, filter ListFilter) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders`, orderColumns)
	conditions := []string{}
	args := []any{}

	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Day != nil {
		dayStart := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
		dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)
		conditions = append(conditions, "createdAt >= ? AND createdAt <= ?")
		args = append(args, dayStart, dayEnd)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY createdAt DESC"

	return r.queryOrders(ctx, query, args...)
}

// FindInWindow returns orders created within [start, end) whose status is in
// the given set. An empty status set matches nothing.
func (r *MySQLOrderRepository) FindInWindow(ctx context.Context, start, end time.Time, statuses []string) ([]domain.Order, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(statuses))
	args := make([]any, 0, len(statuses)+2)
	for i, s := range statuses {
		placeholders[i] = "?"
		args = append(args, s)
	}
	args = append(args, start, end)

	query := fmt.Sprintf(`
		SELECT %s FROM Orders
		WHERE status IN (%s)
		  AND createdAt >= ? AND createdAt < ?
		ORDER BY createdAt DESC`,
		orderColumns, strings.Join(placeholders, ","),
	)

	return r.queryOrders(ctx, query, args...)
}

// UpdateStatus writes the new status and returns the post-update record.
// Re-applying the current status is a no-op in observable outcome, so
// presence is decided by the follow-up read, not by rows affected.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, code string, status string) (*domain.Order, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE Orders SET status = ? WHERE code = ?`, status, code)
	if err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}

	return r.FindByCode(ctx, code)
}

func (r *MySQLOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []uint
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.Code, &order.CustomerNote, &order.PickupTime,
			&order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	items, err := r.loadLineItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].LineItems = items[orders[i].ID]
	}

	return orders, nil
}

func (r *MySQLOrderRepository) loadLineItems(ctx context.Context, orderIDs []uint) (map[uint][]domain.OrderLineItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(orderIDs))
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, orderId, name, category, quantity, unitPrice, lineTotal
		FROM OrderItems
		WHERE orderId IN (%s)
		ORDER BY id ASC`,
		strings.Join(placeholders, ","),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[uint][]domain.OrderLineItem)
	for rows.Next() {
		var item domain.OrderLineItem
		var category sql.NullString
		err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &category,
			&item.Quantity, &item.UnitPrice, &item.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		item.Category = category.String
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return byOrder, nil
}

func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
