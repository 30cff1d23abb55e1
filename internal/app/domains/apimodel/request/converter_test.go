package request

import (
	"errors"
	"testing"

	"storefront/internal/app/domains/entity/etorder"
)

func TestToStatusUpdate(t *testing.T) {
	req := &UpdateOrderStatusRequest{Status: "paid", Action: "refund", AdminNote: "n", TransactionID: "t"}
	u := req.ToStatusUpdate()
	if u.LegacyStatus != "paid" || u.Action != "refund" || u.AdminNote != "n" || u.TransactionID != "t" {
		t.Fatalf("fields not copied: %+v", u)
	}

	var nilReq *UpdateOrderStatusRequest
	if nilReq.ToStatusUpdate() != (etorder.StatusUpdate{}) {
		t.Fatal("nil request must convert to an empty update")
	}
}

func TestToListFilter(t *testing.T) {
	f, err := (&ListOrdersRequest{OrderStatus: " Shipped ", PaymentStatus: "PAID", UserID: "u_1"}).ToListFilter()
	if err != nil {
		t.Fatalf("ToListFilter returned error: %v", err)
	}
	if f.OrderStatus != etorder.OrderStatusShipped || f.PaymentStatus != etorder.PaymentStatusPaid || f.UserID != "u_1" {
		t.Fatalf("filter got %+v", f)
	}

	if _, err := (&ListOrdersRequest{PaymentStatus: "bounced"}).ToListFilter(); !errors.Is(err, etorder.ErrInvalidPaymentStatus) {
		t.Fatalf("expected ErrInvalidPaymentStatus, got %v", err)
	}
}
