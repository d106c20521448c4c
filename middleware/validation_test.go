package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func validatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ValidateContentType("application/json", "application/x-www-form-urlencoded"))
	r.POST("/apply", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestValidateContentTypeAccepted(t *testing.T) {
	router := validatedRouter()

	for _, ct := range []string{
		"application/json",
		"application/json; charset=utf-8",
		"application/x-www-form-urlencoded",
	} {
		req := httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader("{}"))
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "content type: %s", ct)
	}
}

func TestValidateContentTypeRejected(t *testing.T) {
	router := validatedRouter()

	req := httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader("<xml/>"))
	req.Header.Set("Content-Type", "text/xml")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid content type")
}

func TestValidateContentTypeExemptsGET(t *testing.T) {
	router := validatedRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaxRequestSizeRejectsOversizedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MaxRequestSize(16))
	r.POST("/apply", func(c *gin.Context) {
		if _, err := c.GetRawData(); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	small := httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader("tiny"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, small)
	assert.Equal(t, http.StatusOK, w.Code)

	big := httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader(strings.Repeat("x", 64)))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
