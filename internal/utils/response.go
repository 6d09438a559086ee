// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
	"github.com/javajoker/mvshop-backend/internal/i18n"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Route   string      `json:"route,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// SuccessMessageResponse answers with a translated message next to the data.
func SuccessMessageResponse(c *gin.Context, key string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: i18n.T(GetLangFromContext(c), key),
		Data:    data,
	})
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func CreatedResponse(c *gin.Context, key string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: i18n.T(GetLangFromContext(c), key),
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
		Code:    code,
		Details: details,
		Route:   c.Request.URL.Path,
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, apperrors.CodeUnauthorized, message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAuthAccessDenied)
	}
	ErrorResponse(c, http.StatusForbidden, apperrors.CodeForbidden, message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	lang := GetLangFromContext(c)
	message := i18n.T(lang, i18n.KeyValidationInvalid, "input")
	ErrorResponse(c, http.StatusBadRequest, apperrors.CodeValidation, message, errors)
}

// HandleError renders err using its AppError status. Unexpected failures are
// logged with their cause and answered with a generic message.
func HandleError(c *gin.Context, err error) {
	appErr := apperrors.From(err)

	if appErr.Status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"error":  appErr.Err,
		}).Error("request failed")
		ErrorResponse(c, appErr.Status, appErr.Code, i18n.T(GetLangFromContext(c), i18n.KeyInternalError), nil)
		return
	}

	if appErr.Code == apperrors.CodeValidation {
		ValidationErrorResponse(c, apperrors.Fields(appErr))
		return
	}

	ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message, appErr.Details)
}

func PaginatedResponse(c *gin.Context, result PaginationResult) {
	SetPaginationHeaders(c, result)
	SuccessResponseWithMeta(c, result.Data, gin.H{
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			id, err := uuid.Parse(userIDStr)
			return id, err == nil
		}
	}
	return uuid.Nil, false
}

func GetUserNameFromContext(c *gin.Context) string {
	return c.GetString("user_name")
}

func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	if role, exists := c.Get("user_role"); exists {
		if roleStr, ok := role.(string); ok {
			return roleStr, true
		}
	}
	return "", false
}

// ParseUUIDParam reads a path parameter as a UUID. An unparsable id can never
// match a stored record, so it is reported as not found.
func ParseUUIDParam(c *gin.Context, name, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.NotFound(resource)
	}
	return id, nil
}
