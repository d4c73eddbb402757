package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func AdminGetOrders(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		page, err := s.ListOrders(ctx, store.OrderFilter{
			UserID:   c.Query("user_id"),
			Status:   c.Query("status"),
			DateFrom: c.Query("date_from"),
			DateTo:   c.Query("date_to"),
			Page:     queryInt64(c, "page", 1),
			PageSize: queryInt64(c, "page_size", 0),
		})
		if err != nil {
			respondStoreError(c, logger, "GET /admin/orders", err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func AdminGetOrder(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := s.GetOrder(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, logger, "GET /admin/orders/:id", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func AdminUpdateOrderStatus(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := s.UpdateOrderStatus(ctx, c.Param("id"), req.Status)
		if err != nil {
			respondStoreError(c, logger, "PUT /admin/orders/:id/status", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func AdminUpdateOrderPaymentStatus(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := s.UpdateOrderPaymentStatus(ctx, c.Param("id"), req.Status)
		if err != nil {
			respondStoreError(c, logger, "PUT /admin/orders/:id/payment-status", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func AdminDeleteOrder(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := s.DeleteOrder(ctx, c.Param("id")); err != nil {
			respondStoreError(c, logger, "DELETE /admin/orders/:id", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

func AdminGetPayments(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		page, err := s.ListPayments(ctx, store.PaymentFilter{
			OrderID:  c.Query("order_id"),
			UserID:   c.Query("user_id"),
			Status:   c.Query("status"),
			DateFrom: c.Query("date_from"),
			DateTo:   c.Query("date_to"),
			Page:     queryInt64(c, "page", 1),
			PageSize: queryInt64(c, "page_size", 0),
		})
		if err != nil {
			respondStoreError(c, logger, "GET /admin/payments", err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
