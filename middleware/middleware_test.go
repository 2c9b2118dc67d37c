package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dinerozz/datahive-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.GET("/private", AuthenticationMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	return r
}

func TestAuthenticationMiddleware(t *testing.T) {
	utils.SetSecret("middleware-secret")
	id := uuid.Must(uuid.NewV4())
	valid, err := utils.GenerateToken(id, "alice")
	if err != nil {
		t.Fatal(err)
	}
	noUser, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "not-a-uuid"}).
		SignedString([]byte("middleware-secret"))

	tests := []struct {
		name   string
		cookie string
		status int
	}{
		{"valid token", valid, http.StatusOK},
		{"missing cookie", "", http.StatusUnauthorized},
		{"garbage token", "abc", http.StatusUnauthorized},
		{"user id is not a uuid", noUser, http.StatusUnauthorized},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("got status %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusOK && w.Body.String() != id.String() {
				t.Errorf("got user id %q", w.Body.String())
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	generated := w.Header().Get(RequestIDHeader)
	if !utils.ValidateUUID(generated) {
		t.Errorf("expected a generated uuid, got %q", generated)
	}

	incoming := uuid.Must(uuid.NewV4()).String()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("incoming request id should be kept, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got == "<script>" {
		t.Error("malformed request ids must be replaced")
	}
}
