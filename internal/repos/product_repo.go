package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"shopgram/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// Insert persists a new product and returns the stored row with its id.
func (r *ProductRepo) Insert(p domain.NewProduct) (domain.Product, error) {
	id := uuid.NewString()
	// A nil description becomes NULL, distinct from an empty string.
	_, err := r.db.Exec(`
	  INSERT INTO products(id, name, description, price, image_url, created_at)
	  VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, id, p.Name, p.Description, p.Price, p.ImageURL)
	if err != nil {
		return domain.Product{}, err
	}
	return r.Get(id)
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, COALESCE(description,'') AS description, price,
	         COALESCE(image_url,'') AS image_url, created_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

// ListRecent powers the ops status page.
func (r *ProductRepo) ListRecent(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, name, COALESCE(description,'') AS description, price,
	         COALESCE(image_url,'') AS image_url, created_at
	  FROM products
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}
