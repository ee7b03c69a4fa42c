package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-study-session/internal/domain"
)

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		current func() *domain.User
		want    string
	}{
		{"nil func", nil, ""},
		{"signed out", func() *domain.User { return nil }, ""},
		{"empty id", func() *domain.User { return &domain.User{} }, ""},
		{"signed in", func() *domain.User { return &domain.User{ID: "u-1", Email: "a@b.co"} }, "u-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			r := gin.New()
			r.Use(CurrentUser(tc.current))
			r.GET("/", func(c *gin.Context) {
				got = UserIDFrom(c)
				c.Status(http.StatusNoContent)
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
			if got != tc.want {
				t.Fatalf("UserIDFrom = %q, want %q", got, tc.want)
			}
		})
	}
}
