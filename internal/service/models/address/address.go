package address

// Address is a delivery address. Read-only from the order core's
// perspective.
type Address struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"userId"`
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Deliverable reports whether the address satisfies the minimum the order
// core requires before an order may reference it.
func (a *Address) Deliverable() bool {
	return a.State != "" && a.Country != ""
}
