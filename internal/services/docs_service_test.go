package services

import (
	"testing"

	"wheelie-backend/internal/domain"
)

func TestDocsServiceGenerate(t *testing.T) {
	loader := func(id int64) (bookingDocData, error) {
		return bookingDocData{
			BookingID:     id,
			Reference:     "WW-ABCD1234",
			CustomerName:  "Tester",
			CustomerEmail: "tester@example.com",
			CustomerPhone: "9800000000",
			VehicleName:   "Royal Enfield Classic 350",
			Category:      "cruiser",
			PricePerDay:   800,
			StartDate:     "2025-06-01",
			EndDate:       "2025-06-03",
			Days:          2,
			TotalPrice:    1600,
			PaymentMethod: "upi",
			PaidAt:        "2025-05-30 10:00",
			Status:        "confirmed",
		}, nil
	}

	svc := DocsService{Loader: loader}
	session := domain.Session{UserID: 9, Role: domain.RoleUser}

	pdf, filename, err := svc.GenerateVoucher(session, 1)
	if err != nil {
		t.Fatalf("GenerateVoucher returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateVoucher returned empty data")
	}

	invoice, invName, err := svc.GenerateInvoice(session, 1)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(invoice) == 0 || invName == "" {
		t.Fatalf("GenerateInvoice returned empty data")
	}
}

func TestDocsServiceRefusesUnready(t *testing.T) {
	loader := func(id int64) (bookingDocData, error) {
		return bookingDocData{BookingID: id, Reference: "WW-ABCD1234", Status: "pending"}, nil
	}
	svc := DocsService{Loader: loader}
	session := domain.Session{UserID: 9, Role: domain.RoleUser}

	if _, _, err := svc.GenerateVoucher(session, 1); !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError for pending booking voucher, got %v", err)
	}
	if _, _, err := svc.GenerateInvoice(session, 1); !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError for unpaid booking invoice, got %v", err)
	}
}
