package router

import (
	"errors"
	"net/http"

	"github.com/Renal37/smm-storefront/internal/api"
	"github.com/Renal37/smm-storefront/internal/catalog"
	"github.com/Renal37/smm-storefront/internal/logger"
	"github.com/Renal37/smm-storefront/internal/middlewares"
	"github.com/Renal37/smm-storefront/internal/services"
	"go.uber.org/zap"
)

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
// fallback используется для ошибок, которые не удалось классифицировать.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback int) {
	status := fallback

	switch {
	case errors.Is(err, services.ErrCheckoutNotFound), errors.Is(err, catalog.ErrServiceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrSubmitDisabled),
		errors.Is(err, services.ErrQuantityFixed),
		errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrReceiptRequired),
		errors.Is(err, services.ErrInvalidAmount):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrSubmitInProgress),
		errors.Is(err, services.ErrAlreadySubmitted),
		errors.Is(err, services.ErrCheckoutClosed):
		status = http.StatusConflict
	case errors.Is(err, api.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, api.ErrMaintenance):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("uri", r.RequestURI),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	middlewares.WriteError(w, status, err.Error())
}
