package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w
}

func TestSuccessResponse(t *testing.T) {
	w := record(func(c *gin.Context) {
		SuccessResponse(c, http.StatusOK, "done", map[string]int{"count": 2})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StandardResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "done", resp.Message)
	assert.Empty(t, resp.Error)
}

func TestBadRequestError(t *testing.T) {
	w := record(func(c *gin.Context) {
		BadRequestError(c, "bad input", errors.New("field missing"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "field missing", resp.Error)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, resp.Stack)
}

func TestErrorResponseWithStack(t *testing.T) {
	w := record(func(c *gin.Context) {
		ErrorResponseWithStack(c, http.StatusInternalServerError, "broke", errors.New("boom"), "goroutine 1 ...")
	})

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "goroutine 1 ...", resp.Stack)
}

func TestErrorResponseNilError(t *testing.T) {
	w := record(func(c *gin.Context) {
		NotFoundError(c, "missing")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Error)
}
