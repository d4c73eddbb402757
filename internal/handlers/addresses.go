package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

// GetAddresses returns the user's saved addresses, default first.
func GetAddresses(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		addresses, err := s.ListAddresses(ctx, userID)
		if err != nil {
			respondStoreError(c, logger, "GET /addresses", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": addresses})
	}
}

func GetAddress(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		address, err := s.GetAddress(ctx, userID, c.Param("id"))
		if err != nil {
			respondStoreError(c, logger, "GET /addresses/:id", err)
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

func CreateAddress(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input store.AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		address, err := s.CreateAddress(ctx, userID, input)
		if err != nil {
			respondStoreError(c, logger, "POST /addresses", err)
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

func UpdateAddress(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var update store.AddressUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		address, err := s.UpdateAddress(ctx, userID, c.Param("id"), update)
		if err != nil {
			respondStoreError(c, logger, "PUT /addresses/:id", err)
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

func DeleteAddress(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := s.DeleteAddress(ctx, userID, c.Param("id")); err != nil {
			respondStoreError(c, logger, "DELETE /addresses/:id", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
