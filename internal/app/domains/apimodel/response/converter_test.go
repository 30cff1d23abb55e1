package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"storefront/internal/app/domains/entity/etorder"
)

func TestFromOrderEntity(t *testing.T) {
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	order := &etorder.Order{
		ID:          "ord_1",
		UserID:      "u_1",
		Status:      "failed",
		TotalAmount: 499.5,
		Items:       []*etorder.Item{{ProductID: "p_1", Name: "Tee", Size: "M", Quantity: 2, Price: 249.75}, nil},
		AdminNotes:  []etorder.AdminNote{{ID: 7352719360000004096, Note: "gateway timeout", CreatedAt: created}},
		CreatedAt:   created,
	}

	resp := FromOrderEntity(order)
	if resp.OrderStatus != "cancelled" || resp.PaymentStatus != "failed" || resp.PaymentMethod != "razorpay" {
		t.Fatalf("legacy order not normalized: %+v", resp)
	}
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 2 {
		t.Fatalf("items got %+v", resp.Items)
	}
	if resp.AdminNotes[0].ID != "7352719360000004096" {
		t.Fatalf("note id must be a decimal string, got %q", resp.AdminNotes[0].ID)
	}
	if resp.ShippingAddress != nil {
		t.Fatal("missing address must stay nil")
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"userId"`, `"orderStatus"`, `"paymentStatus"`, `"adminNotes"`, `"totalAmount"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("json missing %s: %s", key, raw)
		}
	}
}

func TestFromOrderListEmpty(t *testing.T) {
	list := FromOrderList(nil, 0, 1, 20)
	raw, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"items":[]`) {
		t.Fatalf("empty list must encode as []: %s", raw)
	}
}
