package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"storefront/internal/models"
	"storefront/internal/store"
)

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(s *store.Store, secret string, accessTTL time.Duration, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := s.CreateUser(ctx, store.UserInput{
			Username:  req.Username,
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		})
		if err != nil {
			respondStoreError(c, logger, "POST /auth/register", err)
			return
		}

		token, err := issueToken(user, secret, accessTTL)
		if err != nil {
			logger.Error().Err(err).Msg("token generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"accessToken": token,
			"user":        userJSON(user),
		})
	}
}

func Login(s *store.Store, secret string, accessTTL time.Duration, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := s.GetUserByEmail(ctx, req.Email)
		if err == store.ErrNotFound {
			// Fall back to username login.
			user, err = s.GetUserByUsername(ctx, req.Email)
		}
		if err != nil || !store.VerifyPassword(user, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		token, err := issueToken(user, secret, accessTTL)
		if err != nil {
			logger.Error().Err(err).Msg("token generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		if err := s.UpdateLastLogin(ctx, user.ID); err != nil {
			logger.Warn().Err(err).Msg("update last login failed")
		}

		c.JSON(http.StatusOK, gin.H{
			"accessToken": token,
			"user":        userJSON(user),
		})
	}
}

func Me(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := s.GetUserByID(ctx, userID.Hex())
		if err != nil {
			respondStoreError(c, logger, "GET /auth/me", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
	}
}

func issueToken(user models.User, secret string, accessTTL time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"staff":  user.IsStaff,
		"exp":    time.Now().Add(accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func userJSON(user models.User) gin.H {
	var lastLogin interface{}
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.UTC().Format(time.RFC3339)
	}
	return gin.H{
		"id":         user.ID.Hex(),
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"phone":      user.Phone,
		"is_staff":   user.IsStaff,
		"last_login": lastLogin,
	}
}
