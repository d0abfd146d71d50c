package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/service"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
	"github.com/speaksmart/speaksmart-api/pkg/export"
	"github.com/speaksmart/speaksmart-api/pkg/response"
)

// PaymentHandler exposes payment reservation, history and receipts.
type PaymentHandler struct {
	service  *service.PaymentService
	receipts *export.ReceiptRenderer
	currency string
}

// NewPaymentHandler constructs a payment handler.
func NewPaymentHandler(svc *service.PaymentService, receipts *export.ReceiptRenderer, currency string) *PaymentHandler {
	if receipts == nil {
		receipts = export.NewReceiptRenderer()
	}
	return &PaymentHandler{service: svc, receipts: receipts, currency: currency}
}

// Reserve godoc
// @Summary Reserve a charge for a class
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body models.ReservationRequest true "Reservation payload"
// @Success 200 {object} models.ReservationResponse
// @Router /payment-reservations [post]
func (h *PaymentHandler) Reserve(c *gin.Context) {
	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reservation, err := h.service.Reserve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reservation)
}

// ListForStudent godoc
// @Summary List a student's payments
// @Tags Payments
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} models.Payment
// @Router /payments/{email} [get]
func (h *PaymentHandler) ListForStudent(c *gin.Context) {
	payments, err := h.service.ListForStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// Receipt godoc
// @Summary Download a payment receipt as PDF
// @Tags Payments
// @Produce application/pdf
// @Param email path string true "Student email"
// @Param id path string true "Payment ID"
// @Success 200 {file} binary
// @Router /payments/{email}/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	receipt, err := h.service.GetReceipt(c.Request.Context(), c.Param("email"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	pdfBytes, err := h.receipts.Render(export.ReceiptData{
		PaymentID:      receipt.Payment.ID,
		TransactionID:  receipt.Payment.TransactionID,
		StudentEmail:   receipt.Payment.StudentEmail,
		ClassName:      receipt.Class.Name,
		InstructorName: receipt.Class.InstructorName,
		Amount:         receipt.Payment.Amount,
		Currency:       h.currency,
		PaidAt:         receipt.Payment.PaidAt,
	})
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt"))
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", receipt.Payment.ID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
