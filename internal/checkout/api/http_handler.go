package api

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/storefront/internal/checkout/domain"
	"github.com/ridloal/storefront/internal/checkout/service"
	"github.com/ridloal/storefront/internal/platform/logger"
	sessionApi "github.com/ridloal/storefront/internal/session/api"
)

// Nama field file bukti bayar pada form multipart
const proofFormField = "proof"

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(cs service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: cs}
}

func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	checkoutRoutes := router.Group("/checkout")
	{
		checkoutRoutes.GET("/payment", h.GetPayment)
		checkoutRoutes.POST("/payment", h.SelectPayment)
		checkoutRoutes.GET("/confirmation", h.GetConfirmation)
		checkoutRoutes.POST("/confirmation", h.SubmitConfirmation)
		checkoutRoutes.POST("/finish", h.Finish)
	}
}

// redirect: 303 See Other + Location + {"redirect": path}
func redirect(c *gin.Context, d domain.Decision) {
	path := d.State.Path()
	c.Header("Location", path)
	c.JSON(http.StatusSeeOther, gin.H{"redirect": path, "state": d.State})
}

func (h *CheckoutHandler) GetPayment(c *gin.Context) {
	decision, view, err := h.checkoutService.EnterPaymentSelection(c.Request.Context(), sessionApi.VisitorID(c))
	if err != nil {
		logger.Error("GetPayment Hdl: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment methods"})
		return
	}
	if decision.Redirect {
		redirect(c, decision)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) SelectPayment(c *gin.Context) {
	var req domain.SelectPaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	decision, err := h.checkoutService.SelectPayment(c.Request.Context(), sessionApi.VisitorID(c), req.Method)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPaymentMethod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("SelectPayment Hdl: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment method"})
		return
	}
	redirect(c, decision)
}

func (h *CheckoutHandler) GetConfirmation(c *gin.Context) {
	decision, view, err := h.checkoutService.EnterConfirmation(c.Request.Context(), sessionApi.VisitorID(c))
	if err != nil {
		logger.Error("GetConfirmation Hdl: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load confirmation"})
		return
	}
	if decision.Redirect {
		redirect(c, decision)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) SubmitConfirmation(c *gin.Context) {
	form, err := bindConfirmationForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	decision, order, err := h.checkoutService.SubmitConfirmation(c.Request.Context(), sessionApi.VisitorID(c), form)
	if err != nil {
		if errors.Is(err, service.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("SubmitConfirmation Hdl: request cancelled during processing: %v", err)
			c.JSON(http.StatusRequestTimeout, gin.H{"error": "Confirmation cancelled"})
			return
		}
		logger.Error("SubmitConfirmation Hdl: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
		return
	}
	if decision.Redirect {
		redirect(c, decision)
		return
	}
	c.JSON(http.StatusOK, domain.CompletionResponse{State: decision.State, Order: order})
}

func (h *CheckoutHandler) Finish(c *gin.Context) {
	decision, err := h.checkoutService.Finish(c.Request.Context(), sessionApi.VisitorID(c))
	if err != nil {
		logger.Error("Finish Hdl: service error", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finish checkout"})
		return
	}
	redirect(c, decision)
}

// bindConfirmationForm menerima multipart (field name/email/phone + file proof) atau JSON.
// Isi file tidak disimpan, hanya namanya yang dipakai di pesan konfirmasi.
func bindConfirmationForm(c *gin.Context) (domain.ConfirmationForm, error) {
	var form domain.ConfirmationForm
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		err := c.ShouldBindJSON(&form)
		return form, err
	}

	if err := c.ShouldBind(&form); err != nil {
		return form, err
	}
	if fh, err := c.FormFile(proofFormField); err == nil {
		form.ProofFileName = filepath.Base(fh.Filename)
	}
	return form, nil
}
