package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

// GetSliders lists the active homepage sliders in display order.
func GetSliders(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		sliders, err := s.ListSliders(ctx, true)
		if err != nil {
			respondStoreError(c, logger, "GET /sliders", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": sliders})
	}
}

func GetFAQs(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		faqs, err := s.ListFAQs(ctx, store.FAQFilter{
			Category:   c.Query("category"),
			ActiveOnly: true,
		})
		if err != nil {
			respondStoreError(c, logger, "GET /faqs", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": faqs})
	}
}

func SearchFAQs(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		faqs, err := s.SearchFAQs(ctx, c.Query("q"))
		if err != nil {
			respondStoreError(c, logger, "GET /faqs/search", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": faqs})
	}
}

func GetFAQCategories(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := s.FAQCategories(ctx)
		if err != nil {
			respondStoreError(c, logger, "GET /faqs/categories", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": categories})
	}
}
