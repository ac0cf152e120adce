package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/repositories"
	"wheelie-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the rental voucher and invoice PDFs.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	VehicleRepo repositories.VehicleRepository
	UserRepo    repositories.UserRepository
	PaymentRepo repositories.PaymentRepository
	RequestID   string
	Loader      func(int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID     int64
	Reference     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	VehicleName   string
	Category      string
	PricePerDay   int64
	StartDate     string
	EndDate       string
	Days          int
	TotalPrice    int64
	PaymentMethod string
	PaidAt        string
	Status        string
}

// GenerateVoucher returns the pickup voucher for a confirmed booking.
func (s DocsService) GenerateVoucher(session domain.Session, bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(session, bookingID)
	if err != nil {
		return nil, "", err
	}
	if data.Status != string(domain.BookingConfirmed) {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "voucher is only issued for confirmed bookings"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_voucher", fmt.Sprintf("booking_id=%d", bookingID))
	return buildVoucherPDF(data)
}

// GenerateInvoice returns the invoice for a paid booking.
func (s DocsService) GenerateInvoice(session domain.Session, bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(session, bookingID)
	if err != nil {
		return nil, "", err
	}
	if data.PaidAt == "" {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "invoice is only issued once payment is received"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(data)
}

func (s DocsService) loadBookingDocData(session domain.Session, bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	var out bookingDocData

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return out, err
	}
	if booking.UserID != session.UserID && !session.IsAdmin() {
		return out, domain.ForbiddenError{Msg: "not your booking"}
	}

	out.BookingID = booking.ID
	out.Reference = booking.Reference
	out.StartDate = utils.FormatDate(booking.StartDate)
	out.EndDate = utils.FormatDate(booking.EndDate)
	out.Days = domain.RentalDays(booking.StartDate, booking.EndDate)
	out.TotalPrice = booking.TotalPrice
	out.Status = string(booking.Status)

	if vehicle, err := s.VehicleRepo.GetByID(booking.VehicleID); err == nil {
		out.VehicleName = vehicle.Name
		out.Category = vehicle.Category
		out.PricePerDay = vehicle.PricePerDay
	}
	if user, err := s.UserRepo.GetByID(booking.UserID); err == nil {
		out.CustomerName = user.FullName
		out.CustomerEmail = user.Email
		out.CustomerPhone = user.Phone
	}
	if payments, err := s.PaymentRepo.ListByBooking(booking.ID); err == nil {
		for _, p := range payments {
			if p.Status == domain.PaymentPaid && p.PaidAt != nil {
				out.PaymentMethod = p.Method
				out.PaidAt = p.PaidAt.Format("2006-01-02 15:04")
				break
			}
		}
	}
	return out, nil
}

func buildVoucherPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Rental Voucher", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RENTAL VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref : %s", orDash(d.Reference)),
		fmt.Sprintf("Customer    : %s", orDash(d.CustomerName)),
		fmt.Sprintf("Phone       : %s", orDash(d.CustomerPhone)),
		fmt.Sprintf("Vehicle     : %s (%s)", orDash(d.VehicleName), orDash(d.Category)),
		fmt.Sprintf("Pickup      : %s", orDash(d.StartDate)),
		fmt.Sprintf("Return      : %s", orDash(d.EndDate)),
		fmt.Sprintf("Duration    : %d day(s)", d.Days),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this voucher with a valid driving licence at pickup. Helmets are included with every two-wheeler.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("VOUCHER_%s.pdf", filenamePart(d.Reference))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : INV-"+filenamePart(d.Reference))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name  : "+orDash(d.CustomerName))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Email : "+orDash(d.CustomerEmail))
	pdf.Ln(10)

	desc := fmt.Sprintf("%s rental, %s to %s (%d day(s) @ %s/day)",
		orDash(d.VehicleName), orDash(d.StartDate), orDash(d.EndDate),
		d.Days, utils.FormatRupeePlain(d.PricePerDay),
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Paid via "+orDash(d.PaymentMethod)+" on "+orDash(d.PaidAt))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupeePlain(d.TotalPrice))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Security deposit, fuel and damages are settled at the counter and are not part of this invoice.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%s.pdf", filenamePart(d.Reference))
	return buf.Bytes(), filename, nil
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func filenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
