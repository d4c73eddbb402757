package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

// GetProducts serves the filtered, paginated catalog listing.
func GetProducts(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.ProductFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			MaxPrice: c.Query("max_price"),
			Sort:     c.Query("sort"),
			DateFrom: c.Query("date_from"),
			DateTo:   c.Query("date_to"),
			Page:     queryInt64(c, "page", 1),
			PageSize: queryInt64(c, "page_size", 0),
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		page, err := s.ListProducts(ctx, filter)
		if err != nil {
			respondStoreError(c, logger, "GET /products", err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func GetProduct(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		product, err := s.GetProductByID(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, logger, "GET /products/:id", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func GetProductBySlug(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		product, err := s.GetProductBySlug(ctx, c.Param("slug"))
		if err != nil {
			respondStoreError(c, logger, "GET /products/slug/:slug", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func GetNewArrivals(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt64(c, "limit", 4)

		ctx, cancel := requestContext(c)
		defer cancel()

		products, err := s.NewArrivals(ctx, limit)
		if err != nil {
			respondStoreError(c, logger, "GET /products/new-arrivals", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": products})
	}
}

func GetRelatedProducts(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt64(c, "limit", 4)

		ctx, cancel := requestContext(c)
		defer cancel()

		products, err := s.RelatedProducts(ctx, c.Param("id"), limit)
		if err != nil {
			respondStoreError(c, logger, "GET /products/:id/related", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": products})
	}
}
