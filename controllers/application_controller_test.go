package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"internauto/services"
)

type stubRunner struct {
	result *services.WorkflowResult
	err    error
	calls  int
	lastIn services.ApplicationContext
}

func (r *stubRunner) Run(ctx context.Context, app services.ApplicationContext) (*services.WorkflowResult, error) {
	r.calls++
	r.lastIn = app
	return r.result, r.err
}

func newApplyRouter(runner services.WorkflowRunner, debug bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/apply", NewApplicationController(runner, debug).Apply)
	return r
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/apply", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestApplySuccess(t *testing.T) {
	runner := &stubRunner{result: &services.WorkflowResult{
		ListingsFound: 3,
		Processed:     3,
		Submitted:     2,
		AppliedIDs:    []string{"1", "2"},
	}}
	router := newApplyRouter(runner, false)

	w := postJSON(router, `{"email":"me@example.com","password":"pw","role":"Web Development","letter":"hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Application filled successfully!", resp["message"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["submitted"])

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "me@example.com", runner.lastIn.Email)
	assert.Equal(t, "Web Development", runner.lastIn.Role)
	assert.Equal(t, "hi", runner.lastIn.Letter)
}

func TestApplyAcceptsFormEncoding(t *testing.T) {
	runner := &stubRunner{result: &services.WorkflowResult{}}
	router := newApplyRouter(runner, false)

	form := url.Values{}
	form.Set("email", "me@example.com")
	form.Set("password", "pw")
	form.Set("role", "Design")

	req := httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Design", runner.lastIn.Role)
}

func TestApplyMissingRequiredFields(t *testing.T) {
	runner := &stubRunner{result: &services.WorkflowResult{}}
	router := newApplyRouter(runner, false)

	w := postJSON(router, `{"email":"me@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, runner.calls, "binding failures never start a browser run")

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Invalid request body", resp["message"])
}

func TestApplyMalformedJSON(t *testing.T) {
	runner := &stubRunner{}
	router := newApplyRouter(runner, false)

	w := postJSON(router, `{"email": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, runner.calls)
}

func TestApplyWorkflowError(t *testing.T) {
	runner := &stubRunner{err: errors.New("login failed: bad credentials")}
	router := newApplyRouter(runner, false)

	w := postJSON(router, `{"email":"me@example.com","password":"pw","role":"Web Development"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "bad credentials")
	assert.NotContains(t, w.Body.String(), "stack", "stack traces stay out of production responses")
}

func TestApplyWorkflowErrorDebugIncludesStack(t *testing.T) {
	runner := &stubRunner{err: errors.New("boom")}
	router := newApplyRouter(runner, true)

	w := postJSON(router, `{"email":"me@example.com","password":"pw","role":"Web Development"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["stack"])
}
