package handlers

import (
	"lysodata_backend/internal/appErrors"
	"lysodata_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	Validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{Validator: v}
}

// BindAndValidate binds the JSON body and runs struct validation, writing
// the error response itself. Returns false when the request was rejected.
func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		appErrors.HandleError(c, appErrors.InvalidRequest("Invalid JSON body: "+err.Error()))
		return false
	}
	if err := h.Validator.Struct(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			appErrors.HandleError(c, appErrors.ValidationFailed(vErr.Errors))
		} else {
			appErrors.HandleError(c, appErrors.InternalError(err))
		}
		return false
	}
	return true
}

// BindQueryAndValidate does the same for query parameters.
func (h *BaseHandler) BindQueryAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		appErrors.HandleError(c, appErrors.InvalidRequest("Invalid query parameters: "+err.Error()))
		return false
	}
	if err := h.Validator.Struct(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			appErrors.HandleError(c, appErrors.ValidationFailed(vErr.Errors))
		} else {
			appErrors.HandleError(c, appErrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError maps a service error onto the response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	appErrors.HandleError(c, err)
}
