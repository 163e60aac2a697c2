package apperrors

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный конверт ошибки.
// Все ответы API (успех и ошибка) используют один конверт:
// {success, message, data?, errors?}.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    ErrorCode   `json:"code,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		// Если это не AppError, оборачиваем в InternalError
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("Server error: %v", appErr.Unwrap())
		if !h.Debug {
			// В продакшене скрываем детали
			appErr.Message = "Internal server error"
			appErr.Details = nil
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Code:    appErr.Code,
		Errors:  appErr.Details,
	})
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
