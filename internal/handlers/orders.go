package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/store"
)

type checkoutItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type checkoutRequest struct {
	Items           []checkoutItem         `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	Notes           string                 `json:"notes"`
	ShippingCost    float64                `json:"shipping_cost"`
	TaxAmount       float64                `json:"tax_amount"`
}

// Checkout creates the order, records a pending payment for it and fires the
// owner notification. The steps are not transactional: a payment or notify
// failure leaves the order in place.
func Checkout(s *store.Store, tg *notify.Telegram, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		items := make([]store.OrderItemInput, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, store.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		// No explicit items means checking out the saved cart.
		fromCart := false
		if len(items) == 0 {
			cart, err := s.GetCart(ctx, userID)
			if err != nil {
				respondStoreError(c, logger, "POST /orders", err)
				return
			}
			for _, line := range cart.Items {
				items = append(items, store.OrderItemInput{ProductID: line.ProductID.Hex(), Quantity: line.Quantity})
			}
			fromCart = true
		}

		order, err := s.CreateOrder(ctx, store.OrderInput{
			UserID:          &userID,
			Items:           items,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   req.PaymentMethod,
			Notes:           req.Notes,
			ShippingCost:    req.ShippingCost,
			TaxAmount:       req.TaxAmount,
		})
		if err != nil {
			respondStoreError(c, logger, "POST /orders", err)
			return
		}

		payment, err := s.CreatePayment(ctx, store.PaymentInput{
			OrderID:       order.ID,
			UserID:        &userID,
			Amount:        order.TotalAmount,
			Currency:      "USD",
			PaymentMethod: req.PaymentMethod,
		})
		if err != nil {
			// The order exists but has no payment record; surface the
			// order anyway so the client can retry payment.
			logger.Error().Err(err).Str("order_id", order.ID).Msg("create payment after checkout failed")
			c.JSON(http.StatusCreated, gin.H{"order": order, "payment": nil})
			return
		}

		if fromCart {
			if _, err := s.ClearCart(ctx, userID); err != nil {
				logger.Warn().Err(err).Str("order_id", order.ID).Msg("clear cart after checkout failed")
			}
		}

		go notifyOrderPlaced(s, tg, logger, order.ID, userID.Hex())

		c.JSON(http.StatusCreated, gin.H{"order": order, "payment": payment})
	}
}

func notifyOrderPlaced(s *store.Store, tg *notify.Telegram, logger zerolog.Logger, orderID, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	order, name, email, err := loadOrderForNotify(ctx, s, orderID, userID)
	if err != nil {
		logger.Warn().Err(err).Str("order_id", orderID).Msg("order notification skipped")
		return
	}
	tg.OrderPlaced(ctx, order, name, email)
}

func notifyPaymentReceived(s *store.Store, tg *notify.Telegram, logger zerolog.Logger, orderID, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	order, name, email, err := loadOrderForNotify(ctx, s, orderID, userID)
	if err != nil {
		logger.Warn().Err(err).Str("order_id", orderID).Msg("payment notification skipped")
		return
	}
	tg.PaymentReceived(ctx, order, name, email)
}

func loadOrderForNotify(ctx context.Context, s *store.Store, orderID, userID string) (models.Order, string, string, error) {
	order, err := s.GetOrderRaw(ctx, orderID)
	if err != nil {
		return models.Order{}, "", "", err
	}

	name, email := "Unknown", "N/A"
	if user, err := s.GetUserByID(ctx, userID); err == nil {
		name = strings.TrimSpace(user.FirstName + " " + user.LastName)
		if name == "" {
			name = user.Username
		}
		email = user.Email
	}
	return order, name, email, nil
}

func GetOrders(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		page, err := s.ListOrders(ctx, store.OrderFilter{
			UserID:   userID.Hex(),
			Status:   c.Query("status"),
			Page:     queryInt64(c, "page", 1),
			PageSize: queryInt64(c, "page_size", 0),
		})
		if err != nil {
			respondStoreError(c, logger, "GET /orders", err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func GetOrder(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := s.GetOrder(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, logger, "GET /orders/:id", err)
			return
		}
		if !ownedBy(order.UserID, userID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
