package salon

type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Color string `json:"color"`
}

// Order.ProductUsed is a copy of the product name taken when the order was
// created; renaming or deleting the product later leaves it untouched.
type Order struct {
	ID           int64  `json:"id"`
	OrderDate    string `json:"order_date"`
	DeliveryDate string `json:"delivery_date"`
	OrderValue   string `json:"order_value"`
	ProductUsed  string `json:"product_used"`
	Delivered    bool   `json:"delivered"`
}

func (o Order) Status() Status {
	if o.Delivered {
		return StatusDelivered
	}
	return StatusPending
}

type ProductInput struct {
	Name  string
	Stock int
	Color string
}

type OrderInput struct {
	OrderDate    string
	DeliveryDate string
	OrderValue   string
	ProductUsed  string
}
