package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func snapA() Snapshot {
	return Snapshot{
		ProductID: "a0000000-0000-0000-0000-000000000001",
		Name:      "Vintage Denim Jacket",
		Slug:      "vintage-denim-jacket",
		UnitPrice: 1200,
		Stock:     5,
	}
}

func snapB() Snapshot {
	return Snapshot{
		ProductID: "b0000000-0000-0000-0000-000000000002",
		Name:      "Canvas Tote",
		Slug:      "canvas-tote",
		UnitPrice: 550,
		Stock:     100,
	}
}

func TestAddMergesSameProduct(t *testing.T) {
	var c Cart

	for i := 0; i < 4; i++ {
		c.Add(snapA(), 1)
	}

	if len(c.Items) != 1 {
		t.Fatalf("expected one line item, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", c.Items[0].Quantity)
	}
}

func TestAddClampsToStock(t *testing.T) {
	var c Cart

	if !c.Add(snapA(), 3) {
		t.Fatal("first add should change the cart")
	}
	c.Add(snapA(), 99)

	if got := c.Items[0].Quantity; got != 5 {
		t.Fatalf("expected quantity clamped to stock 5, got %d", got)
	}

	// A cart already at the ceiling has nothing left to absorb.
	if c.Add(snapA(), 1) {
		t.Fatal("add at stock ceiling should be a no-op")
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	var c Cart

	if c.Add(snapA(), 0) {
		t.Fatal("zero quantity should be a no-op")
	}
	if c.Add(snapA(), -2) {
		t.Fatal("negative quantity should be a no-op")
	}

	out := snapA()
	out.Stock = 0
	if c.Add(out, 1) {
		t.Fatal("out-of-stock product should be a no-op")
	}

	if !c.Empty() {
		t.Fatalf("cart should still be empty, has %d items", len(c.Items))
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	var c Cart

	c.Add(snapA(), 1)
	c.Add(snapB(), 1)
	c.Add(snapA(), 1)

	ids := []string{c.Items[0].ProductID, c.Items[1].ProductID}
	want := []string{snapA().ProductID, snapB().ProductID}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("unexpected item order:\n%s", diff)
	}
}

func TestSubtotal(t *testing.T) {
	var c Cart

	c.Add(snapA(), 2)
	c.Add(snapB(), 1)

	want := 1200*2 + 550*1
	if got := c.Subtotal(); got != want {
		t.Fatalf("expected subtotal %d, got %d", want, got)
	}

	// Recompute independently from the line items.
	var check int
	for _, it := range c.Items {
		check += it.UnitPrice * it.Quantity
	}
	if check != c.Subtotal() {
		t.Fatalf("independent recomputation %d disagrees with Subtotal %d", check, c.Subtotal())
	}
}

func TestSetQuantity(t *testing.T) {
	var c Cart
	c.Add(snapA(), 2)

	if !c.SetQuantity(snapA().ProductID, 4) {
		t.Fatal("setting a new quantity should change the cart")
	}
	if c.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", c.Items[0].Quantity)
	}

	c.SetQuantity(snapA().ProductID, 42)
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity clamped to 5, got %d", c.Items[0].Quantity)
	}

	if !c.SetQuantity(snapA().ProductID, 0) {
		t.Fatal("quantity zero should remove the line")
	}
	if !c.Empty() {
		t.Fatal("cart should be empty after removing its only line")
	}
}

func TestUnknownProductIsNoOp(t *testing.T) {
	var c Cart
	c.Add(snapA(), 2)
	before := c.Revision

	if c.Remove("c0000000-0000-0000-0000-00000000dead") {
		t.Fatal("removing an unknown product should be a no-op")
	}
	if c.SetQuantity("c0000000-0000-0000-0000-00000000dead", 3) {
		t.Fatal("updating an unknown product should be a no-op")
	}

	if c.Revision != before {
		t.Fatal("no-ops must not bump the revision")
	}
	if len(c.Items) != 1 || c.Items[0].Quantity != 2 {
		t.Fatal("cart must be unchanged after no-ops")
	}
}

func TestClearDropsVoucher(t *testing.T) {
	var c Cart
	c.Add(snapA(), 1)
	c.VoucherCode = "SAVE10"

	c.Clear()

	if !c.Empty() || c.VoucherCode != "" {
		t.Fatalf("clear left state behind: items=%d voucher=%q", len(c.Items), c.VoucherCode)
	}
}

func TestRemoveVoucherIdempotent(t *testing.T) {
	var c Cart
	c.VoucherCode = "SAVE10"

	if !c.RemoveVoucher() {
		t.Fatal("first removal should report a change")
	}
	if c.RemoveVoucher() {
		t.Fatal("second removal should be a no-op")
	}
}
