package domain

type Product struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	ImageURL    string  `db:"image_url"`
	CreatedAt   string  `db:"created_at"`
}

// NewProduct is the creation payload built from an /add_product command.
type NewProduct struct {
	Name        string
	Price       float64
	Description *string // nil when the caption had no description line
	ImageURL    string
}

type Order struct {
	Number         string `db:"order_number"`
	CustomerName   string `db:"customer_name"`
	CustomerEmail  string `db:"customer_email"`
	Status         string `db:"status"`
	TrackingNumber string `db:"tracking_number"`
	CreatedAt      string `db:"created_at"`
	UpdatedAt      string `db:"updated_at"`
}

// OrderUpdate is a partial update: a nil TrackingNumber keeps the stored value.
type OrderUpdate struct {
	Status         string
	TrackingNumber *string
}

// ProductCommand is the parsed form of an /add_product caption.
type ProductCommand struct {
	Name        string
	Price       float64
	Description *string
}

// OrderUpdateCommand is the parsed form of an /update_order message.
type OrderUpdateCommand struct {
	OrderNumber    string
	Status         string
	TrackingNumber *string
}
