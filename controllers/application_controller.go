package controllers

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"internauto/services"
	"internauto/utils"
)

// ApplyRequest is the single inbound operation's payload. Accepted as
// JSON or URL-encoded form.
type ApplyRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Role     string `json:"role" form:"role" binding:"required"`
	Letter   string `json:"letter" form:"letter"`
}

// ApplicationController exposes the auto-apply workflow over HTTP.
type ApplicationController struct {
	Runner services.WorkflowRunner
	Debug  bool
}

func NewApplicationController(runner services.WorkflowRunner, debug bool) *ApplicationController {
	return &ApplicationController{Runner: runner, Debug: debug}
}

// Apply handles POST /apply: it runs the whole browser workflow
// synchronously and reports a generic success or error. The workflow's
// real output is its side effects; the payload is a small run summary.
func (c *ApplicationController) Apply(ctx *gin.Context) {
	var req ApplyRequest
	if err := ctx.ShouldBind(&req); err != nil {
		utils.BadRequestError(ctx, "Invalid request body", err)
		return
	}

	utils.LogInfo("Received application request", map[string]string{"role": req.Role})

	result, err := c.Runner.Run(ctx.Request.Context(), services.ApplicationContext{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Letter:   req.Letter,
	})
	if err != nil {
		utils.LogError("Error processing application", err)
		if c.Debug {
			utils.ErrorResponseWithStack(ctx, http.StatusInternalServerError,
				"Error processing application", err, string(debug.Stack()))
			return
		}
		utils.InternalServerError(ctx, "Error processing application", err)
		return
	}

	utils.LogInfo("Application run finished", result)
	utils.SuccessResponse(ctx, http.StatusOK, "Application filled successfully!", result)
}
