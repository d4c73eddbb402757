package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func GetCart(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cart, err := s.GetCart(ctx, userID)
		if err != nil {
			respondStoreError(c, logger, "GET /cart", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func AddToCart(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cart, err := s.AddToCart(ctx, userID, req.ProductID, req.Quantity)
		if err != nil {
			respondStoreError(c, logger, "POST /cart/items", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func UpdateCartItem(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cart, err := s.UpdateCartItem(ctx, userID, c.Param("lineId"), req.Quantity)
		if err != nil {
			respondStoreError(c, logger, "PUT /cart/items/:lineId", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func RemoveCartItem(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cart, err := s.RemoveCartItem(ctx, userID, c.Param("lineId"))
		if err != nil {
			respondStoreError(c, logger, "DELETE /cart/items/:lineId", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func ClearCart(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cart, err := s.ClearCart(ctx, userID)
		if err != nil {
			respondStoreError(c, logger, "DELETE /cart", err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
