package cart

// Item is one product line in a cart. Everything but Quantity is a
// snapshot copied from the catalog at add time; later catalog changes do
// not flow back into carts already holding the product.
type Item struct {
	ProductID         string `json:"productId"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	ImageURL          string `json:"imageUrl"`
	UnitPrice         int    `json:"unitPrice"`
	OriginalUnitPrice int    `json:"originalUnitPrice,omitempty"`
	Quantity          int    `json:"quantity"`
	Stock             int    `json:"stock"`
}

// Cart is an owned value: handlers load it from a cartstore.Store, mutate
// it through the methods below and save it back. Items keep insertion
// order, ProductID is unique across them and Quantity is always >= 1.
//
// Revision increments on every mutation. Apply uses it to discard voucher
// validations that resolved against a cart that has since changed.
type Cart struct {
	Items       []Item `json:"items"`
	VoucherCode string `json:"appliedVoucherCode,omitempty"`
	Revision    int    `json:"-"`
}

// Snapshot is the catalog's view of a product at the moment it is added
// to a cart. It is validated at the boundary before it reaches the engine.
type Snapshot struct {
	ProductID         string `validate:"required"`
	Name              string `validate:"required"`
	Slug              string
	ImageURL          string
	UnitPrice         int `validate:"gte=0"`
	OriginalUnitPrice int `validate:"gte=0"`
	Stock             int `validate:"gte=0"`
}

func (c *Cart) Subtotal() int {
	var tot int
	for _, it := range c.Items {
		tot += it.UnitPrice * it.Quantity
	}
	return tot
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

func (c *Cart) find(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
