package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

func AdminGetFAQs(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		faqs, err := s.ListFAQs(ctx, store.FAQFilter{Category: c.Query("category")})
		if err != nil {
			respondStoreError(c, logger, "GET /admin/faqs", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": faqs})
	}
}

func AdminCreateFAQ(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input store.FAQInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		faq, err := s.CreateFAQ(ctx, input)
		if err != nil {
			respondStoreError(c, logger, "POST /admin/faqs", err)
			return
		}
		c.JSON(http.StatusCreated, faq)
	}
}

func AdminUpdateFAQ(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update store.FAQUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		faq, err := s.UpdateFAQ(ctx, c.Param("id"), update)
		if err != nil {
			respondStoreError(c, logger, "PUT /admin/faqs/:id", err)
			return
		}
		c.JSON(http.StatusOK, faq)
	}
}

func AdminDeleteFAQ(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := s.DeleteFAQ(ctx, c.Param("id")); err != nil {
			respondStoreError(c, logger, "DELETE /admin/faqs/:id", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
