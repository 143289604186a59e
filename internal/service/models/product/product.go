package product

// Product is the slice of the catalogue the order core reads. Stock is the
// only field it ever writes, via an atomic decrement at reservation time.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Stock      int    `json:"stock"`
}
