package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/payments"
	"storefront/internal/store"
)

type paypalCreateRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type bakongCreateRequest struct {
	OrderID  string `json:"order_id" binding:"required"`
	Currency string `json:"currency"`
}

// CreatePayPalPayment opens a PayPal order for an existing storefront order
// and stashes the provider id on the payment record.
func CreatePayPalPayment(s *store.Store, pp *payments.PayPalClient, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req paypalCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := s.GetOrder(ctx, req.OrderID)
		if err != nil {
			respondStoreError(c, logger, "POST /payments/paypal", err)
			return
		}
		if !ownedBy(order.UserID, userID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		payment, err := s.GetPaymentByOrder(ctx, order.ID)
		if err != nil {
			respondStoreError(c, logger, "POST /payments/paypal", err)
			return
		}

		ppOrder, err := pp.CreateOrder(c.Request.Context(), order.TotalAmount, payment.Currency, order.OrderNumber)
		if err != nil {
			respondStoreError(c, logger, "POST /payments/paypal", err)
			return
		}

		if _, err := s.UpdatePaymentStatus(ctx, payment.ID, models.PaymentPending, map[string]interface{}{
			"paypal_order_id": ppOrder.ID,
		}); err != nil {
			respondStoreError(c, logger, "POST /payments/paypal", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"paypal_order_id": ppOrder.ID,
			"status":          ppOrder.Status,
			"links":           ppOrder.Links,
		})
	}
}

// CapturePayPalPayment captures an approved PayPal order and, on COMPLETED,
// marks the local payment and order paid.
func CapturePayPalPayment(s *store.Store, pp *payments.PayPalClient, tg *notify.Telegram, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		paypalOrderID := c.Param("id")

		ctx, cancel := requestContext(c)
		defer cancel()

		payment, err := s.GetPaymentByDetail(ctx, "paypal_order_id", paypalOrderID)
		if err != nil {
			respondStoreError(c, logger, "POST /payments/paypal/:id/capture", err)
			return
		}
		if !ownedBy(payment.UserID, userID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		capture, err := pp.CaptureOrder(c.Request.Context(), paypalOrderID)
		if err != nil {
			respondStoreError(c, logger, "POST /payments/paypal/:id/capture", err)
			return
		}

		if capture.Status != "COMPLETED" {
			c.JSON(http.StatusOK, gin.H{"status": capture.Status, "payment": payment})
			return
		}

		payment, err = s.UpdatePaymentStatus(ctx, payment.ID, models.PaymentCompleted, map[string]interface{}{
			"paypal_capture_id": capture.CaptureID(),
		})
		if err != nil {
			respondStoreError(c, logger, "POST /payments/paypal/:id/capture", err)
			return
		}
		if _, err := s.UpdateOrderPaymentStatus(ctx, payment.OrderID, models.PaymentCompleted); err != nil {
			logger.Error().Err(err).Str("order_id", payment.OrderID).Msg("mark order paid failed")
		}

		go notifyPaymentReceived(s, tg, logger, payment.OrderID, userID.Hex())

		c.JSON(http.StatusOK, gin.H{"status": capture.Status, "payment": payment})
	}
}

// CreateBakongPayment generates a KHQR code for an order. The payload's MD5
// is the tracking handle for status polling.
func CreateBakongPayment(s *store.Store, bk *payments.BakongClient, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req bakongCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := s.GetOrder(ctx, req.OrderID)
		if err != nil {
			respondStoreError(c, logger, "POST /payments/bakong", err)
			return
		}
		if !ownedBy(order.UserID, userID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		qr, err := bk.GenerateQR(order.TotalAmount, req.Currency)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		payment, err := s.GetPaymentByOrder(ctx, order.ID)
		if err != nil {
			respondStoreError(c, logger, "POST /payments/bakong", err)
			return
		}
		if _, err := s.UpdatePaymentStatus(ctx, payment.ID, models.PaymentPending, map[string]interface{}{
			"khqr_md5": qr.MD5,
		}); err != nil {
			respondStoreError(c, logger, "POST /payments/bakong", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"qr_payload": qr.Payload,
			"md5":        qr.MD5,
		})
	}
}

// CheckBakongPayment polls the provider for the KHQR transaction and marks
// the payment and order paid once it settles.
func CheckBakongPayment(s *store.Store, bk *payments.BakongClient, tg *notify.Telegram, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		md5Hash := c.Param("md5")

		ctx, cancel := requestContext(c)
		defer cancel()

		payment, err := s.GetPaymentByDetail(ctx, "khqr_md5", md5Hash)
		if err != nil {
			respondStoreError(c, logger, "GET /payments/bakong/:md5/status", err)
			return
		}
		if !ownedBy(payment.UserID, userID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		paid, tx, err := bk.CheckTransaction(c.Request.Context(), md5Hash)
		if err != nil {
			respondStoreError(c, logger, "GET /payments/bakong/:md5/status", err)
			return
		}
		if !paid {
			c.JSON(http.StatusOK, gin.H{"paid": false})
			return
		}

		if payment.Status != models.PaymentCompleted {
			payment, err = s.UpdatePaymentStatus(ctx, payment.ID, models.PaymentCompleted, map[string]interface{}{
				"bakong_hash": tx.Hash,
			})
			if err != nil {
				respondStoreError(c, logger, "GET /payments/bakong/:md5/status", err)
				return
			}
			if _, err := s.UpdateOrderPaymentStatus(ctx, payment.OrderID, models.PaymentCompleted); err != nil {
				logger.Error().Err(err).Str("order_id", payment.OrderID).Msg("mark order paid failed")
			}
			go notifyPaymentReceived(s, tg, logger, payment.OrderID, userID.Hex())
		}

		c.JSON(http.StatusOK, gin.H{"paid": true, "payment": payment})
	}
}
