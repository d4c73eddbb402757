package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

type wishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetWishlist returns the user's wished products resolved to full records.
func GetWishlist(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		products, err := s.WishlistProducts(ctx, userID)
		if err != nil {
			respondStoreError(c, logger, "GET /wishlist", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": products})
	}
}

func AddToWishlist(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req wishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := s.AddToWishlist(ctx, userID, req.ProductID)
		if err != nil {
			respondStoreError(c, logger, "POST /wishlist", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func RemoveFromWishlist(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		list, err := s.RemoveFromWishlist(ctx, userID, c.Param("productId"))
		if err != nil {
			respondStoreError(c, logger, "DELETE /wishlist/:productId", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
