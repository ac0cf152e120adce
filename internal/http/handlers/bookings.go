package handlers

import (
	"net/http"
	"strings"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
	"wheelie-backend/internal/http/middleware"
	"wheelie-backend/internal/services"
	"wheelie-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

type createBookingRequest struct {
	VehicleID int64  `json:"vehicleId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "startDate", Msg: "expected YYYY-MM-DD", Err: err})
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "endDate", Msg: "expected YYYY-MM-DD", Err: err})
		return
	}

	booking, err := bookingService(c).CreateBooking(session, services.CreateBookingInput{
		VehicleID: req.VehicleID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GET /api/bookings/me
func GetMyBookings(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	bookings, err := bookingService(c).ListUserBookings(session, session.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/users/:id/bookings (self or admin)
func GetUserBookings(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	bookings, err := bookingService(c).ListUserBookings(session, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	booking, err := bookingService(c).GetBooking(session, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

type bookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/admin/bookings/:id/status
func UpdateBookingStatus(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req bookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := bookingService(c).SetBookingStatus(session, id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// GET /api/admin/bookings?status=&tab=
func GetBookings(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	filter := models.BookingFilter{Tab: strings.TrimSpace(c.Query("tab"))}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := domain.ParseBookingStatus(raw)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		filter.Status = status
	}
	bookings, err := bookingService(c).ListBookings(session, filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/bookings/:id/voucher returns the pickup voucher PDF (inline).
func GetBookingVoucherPDF(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := docsService(c).GenerateVoucher(session, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/bookings/:id/invoice returns the invoice PDF (inline).
func GetBookingInvoicePDF(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := docsService(c).GenerateInvoice(session, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
