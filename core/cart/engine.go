package cart

// Mutations never fail: invalid or stale inputs become no-ops and the
// boolean return tells the caller whether anything changed and therefore
// whether the cart needs to be persisted again.

// Add merges a product snapshot into the cart. Re-adding a product the
// cart already holds increments the existing line instead of duplicating
// it. Quantities are clamped to the stock ceiling captured in the
// snapshot; requests for more are silently trimmed to the maximum.
func (c *Cart) Add(s Snapshot, qty int) bool {
	if qty < 1 || s.Stock < 1 {
		return false
	}

	if i := c.find(s.ProductID); i >= 0 {
		it := &c.Items[i]
		want := it.Quantity + qty
		if want > it.Stock {
			want = it.Stock
		}
		if want == it.Quantity {
			return false
		}
		it.Quantity = want
		c.Revision++
		return true
	}

	if qty > s.Stock {
		qty = s.Stock
	}

	c.Items = append(c.Items, Item{
		ProductID:         s.ProductID,
		Name:              s.Name,
		Slug:              s.Slug,
		ImageURL:          s.ImageURL,
		UnitPrice:         s.UnitPrice,
		OriginalUnitPrice: s.OriginalUnitPrice,
		Quantity:          qty,
		Stock:             s.Stock,
	})
	c.Revision++
	return true
}

// SetQuantity sets a line to an absolute quantity, clamped to the stock
// ceiling known for that line. A quantity of zero or less removes the
// line. Unknown products are a no-op.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	if qty <= 0 {
		return c.Remove(productID)
	}

	i := c.find(productID)
	if i < 0 {
		return false
	}

	it := &c.Items[i]
	if qty > it.Stock {
		qty = it.Stock
	}
	if qty == it.Quantity {
		return false
	}

	it.Quantity = qty
	c.Revision++
	return true
}

func (c *Cart) Remove(productID string) bool {
	i := c.find(productID)
	if i < 0 {
		return false
	}

	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.Revision++
	return true
}

// Clear empties the cart and drops any applied voucher.
func (c *Cart) Clear() {
	c.Items = nil
	c.VoucherCode = ""
	c.Revision++
}

// RemoveVoucher drops the applied voucher code. Idempotent.
func (c *Cart) RemoveVoucher() bool {
	if c.VoucherCode == "" {
		return false
	}
	c.VoucherCode = ""
	c.Revision++
	return true
}
