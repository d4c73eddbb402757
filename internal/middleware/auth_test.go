package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func newAuthRouter(staffOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	guard := UserAuth(testSecret, zerolog.Nop())
	if staffOnly {
		guard = AdminAuth(testSecret, zerolog.Nop())
	}
	r.GET("/protected", guard, func(c *gin.Context) {
		id := c.MustGet("userId").(primitive.ObjectID)
		c.JSON(http.StatusOK, gin.H{"user_id": id.Hex()})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserAuthMissingToken(t *testing.T) {
	w := doRequest(newAuthRouter(false), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestUserAuthBadScheme(t *testing.T) {
	w := doRequest(newAuthRouter(false), "Token abc")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestUserAuthValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signToken(t, jwt.MapClaims{
		"userId": userID.Hex(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(newAuthRouter(false), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestUserAuthExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(-time.Minute).Unix(),
	})

	w := doRequest(newAuthRouter(false), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAdminAuthRejectsNonStaff(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"staff":  false,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(newAuthRouter(true), "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAdminAuthAllowsStaff(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"staff":  true,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	w := doRequest(newAuthRouter(true), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
