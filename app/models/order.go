package models

// Validate checks the fields required to accept an order.
func (o *Order) Validate() error {
	return validate.Struct(o)
}

// ItemCount returns the number of line items in the order.
func (o *Order) ItemCount() int {
	return len(o.Items)
}
