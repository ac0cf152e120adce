package handlers

import (
	"net/http"
	"strings"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
	"wheelie-backend/internal/http/middleware"
	"wheelie-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{RequestID: middleware.GetRequestID(c)}
}

type createPaymentRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Method string `json:"method" binding:"required"`
}

// POST /api/bookings/:id/payments
// Cash stays pending until the counter confirms it; upi and online are
// settled in the same request and confirm the booking.
func CreatePayment(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req createPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := paymentService(c)
	payment, err := svc.RecordPayment(session, bookingID, req.Amount, req.Method)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if payment.Method != domain.MethodCash {
		payment, err = svc.MarkPaymentPaid(session, payment.ID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GET /api/bookings/:id/payments
func GetBookingPayments(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, "id")
	if !ok {
		return
	}
	// ownership check rides on the booking lookup
	detail, err := bookingService(c).GetBooking(session, bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": detail.Payments})
}

// GET /api/admin/payments?status=&method=
func GetPayments(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	filter := models.PaymentFilter{Method: strings.TrimSpace(c.Query("method"))}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := domain.ParsePaymentStatus(raw)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		filter.Status = status
	}
	payments, err := paymentService(c).ListPayments(session, filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

type paymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/admin/payments/:id/status
// Marking paid confirms the linked booking as a side effect.
func UpdatePaymentStatus(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req paymentStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	payment, err := paymentService(c).SetPaymentStatus(session, id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
