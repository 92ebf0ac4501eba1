package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigflow/gigflow-backend/internal/dto"
	"github.com/gigflow/gigflow-backend/internal/http/middleware"
	"github.com/gigflow/gigflow-backend/internal/logger"
	"github.com/gigflow/gigflow-backend/internal/pkg/apperror"
)

// ErrNoUserInContext возвращается, когда auth middleware не положил userID в контекст.
var ErrNoUserInContext = errors.New("пользователь не найден в контексте")

// CurrentUserID извлекает идентификатор пользователя из gin.Context.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, ErrNoUserInContext
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoUserInContext
	}

	return userID, nil
}

// ParseUUIDParam читает UUID из параметра пути.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, fmt.Errorf("параметр %s должен быть валидным UUID", paramName)
	}

	return parsed, nil
}

// RespondData отправляет успешный ответ с данными.
func RespondData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, dto.SuccessResponse{Success: true, Data: data})
}

// RespondList отправляет успешный ответ со списком и количеством элементов.
func RespondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Count: &count, Data: data})
}

// RespondMessage отправляет успешный ответ с сообщением без данных.
func RespondMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.SuccessResponse{Success: true, Message: message})
}

// RespondError отправляет ответ с ошибкой.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Success: false, Message: message})
}

// RespondAppError переводит ошибку сервиса в HTTP ответ.
// Известные *apperror.AppError отдаются со своим статусом и сообщением,
// всё остальное логируется и превращается в 500 без деталей.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusInternalServerError && logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"path":  c.FullPath(),
				"error": err.Error(),
			}).Error("внутренняя ошибка обработчика")
		}
		RespondError(c, appErr.HTTPStatus, appErr.Message)
		return
	}

	if logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("необработанная ошибка обработчика")
	}
	RespondError(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}
