package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopgram/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// GetByNumber returns a NotFoundError when no such order exists, so callers
// can distinguish "absent" from a lookup failure.
func (r *OrderRepo) GetByNumber(number string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT order_number, COALESCE(customer_name,'') AS customer_name,
	         COALESCE(customer_email,'') AS customer_email, status,
	         COALESCE(tracking_number,'') AS tracking_number,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM orders
	  WHERE order_number = ?
	`, number)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, &domain.NotFoundError{Entity: "order", Key: number}
	}
	return o, err
}

// Update applies a partial update and returns the stored row. Status is
// always written; tracking only when the command carried one.
func (r *OrderRepo) Update(number string, upd domain.OrderUpdate) (domain.Order, error) {
	var res sql.Result
	var err error
	if upd.TrackingNumber != nil {
		res, err = r.db.Exec(`
		  UPDATE orders SET status = ?, tracking_number = ?, updated_at = CURRENT_TIMESTAMP
		  WHERE order_number = ?
		`, upd.Status, *upd.TrackingNumber, number)
	} else {
		res, err = r.db.Exec(`
		  UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
		  WHERE order_number = ?
		`, upd.Status, number)
	}
	if err != nil {
		return domain.Order{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Order{}, &domain.NotFoundError{Entity: "order", Key: number}
	}
	return r.GetByNumber(number)
}

type StatusCount struct {
	Status string `db:"status"`
	N      int    `db:"n"`
}

// CountByStatus powers the ops status page.
func (r *OrderRepo) CountByStatus() ([]StatusCount, error) {
	var out []StatusCount
	err := r.db.Select(&out, `
	  SELECT status, COUNT(*) AS n
	  FROM orders
	  GROUP BY status
	  ORDER BY status
	`)
	return out, err
}
