package router

import (
	"net/http"

	"github.com/Renal37/smm-storefront/internal/middlewares"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/go-chi/chi/v5"
)

type openCheckoutRequest struct {
	ServiceID int    `json:"service_id"`
	Currency  string `json:"currency"`
}

func checkoutService(w http.ResponseWriter, r *http.Request) (models.CheckoutService, models.Session, bool) {
	session, ok := middlewares.GetSessionFromContext(w, r)
	if !ok {
		return nil, models.Session{}, false
	}

	service := middlewares.GetServiceFromContext[models.CheckoutService](w, r, middlewares.CheckoutServiceKey)
	if service == nil {
		return nil, models.Session{}, false
	}

	return *service, session, true
}

func OpenCheckout(w http.ResponseWriter, r *http.Request) {
	request, ok := middlewares.GetParsedJSONData[openCheckoutRequest](w, r)
	if !ok {
		return
	}

	if request.ServiceID <= 0 {
		middlewares.WriteError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	checkouts, session, ok := checkoutService(w, r)
	if !ok {
		return
	}

	view, err := checkouts.Open(r.Context(), session, request.ServiceID, request.Currency)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadGateway)
		return
	}

	middlewares.EncodeJSONResponseWithStatus(w, http.StatusCreated, view)
}

func GetCheckout(w http.ResponseWriter, r *http.Request) {
	checkouts, session, ok := checkoutService(w, r)
	if !ok {
		return
	}

	view, err := checkouts.View(session, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, view)
}

func UpdateCheckout(w http.ResponseWriter, r *http.Request) {
	patch, ok := middlewares.GetParsedJSONData[models.DraftPatch](w, r)
	if !ok {
		return
	}

	checkouts, session, ok := checkoutService(w, r)
	if !ok {
		return
	}

	view, err := checkouts.Update(session, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, view)
}

func AttachReceipt(w http.ResponseWriter, r *http.Request) {
	checkouts, session, ok := checkoutService(w, r)
	if !ok {
		return
	}

	receipt, err := middlewares.GetReceiptFromForm(r, "file")
	if err != nil {
		middlewares.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if receipt == nil {
		middlewares.WriteError(w, http.StatusBadRequest, "file is required")
		return
	}

	view, err := checkouts.AttachReceipt(session, chi.URLParam(r, "id"), *receipt)
	if err != nil {
		writeServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, view)
}

// SubmitCheckout отправляет заказ. Ошибка backend-а отдаётся как 502, черновик при этом сохраняется.
func SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	checkouts, session, ok := checkoutService(w, r)
	if !ok {
		return
	}

	result, err := checkouts.Submit(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadGateway)
		return
	}

	middlewares.EncodeJSONResponse(w, result)
}

func CloseCheckout(w http.ResponseWriter, r *http.Request) {
	checkouts, session, ok := checkoutService(w, r)
	if !ok {
		return
	}

	if err := checkouts.Close(session, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
