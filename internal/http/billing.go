package router

import (
	"net/http"

	"github.com/Renal37/smm-storefront/internal/middlewares"
	"github.com/Renal37/smm-storefront/internal/models"
)

func CreateDeposit(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.GetSessionFromContext(w, r)
	if !ok {
		return
	}

	billingService := middlewares.GetServiceFromContext[models.BillingService](w, r, middlewares.BillingServiceKey)
	if billingService == nil {
		return
	}

	receipt, err := middlewares.GetReceiptFromForm(r, "file")
	if err != nil {
		middlewares.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft := models.DepositDraft{
		Amount:        r.FormValue("amount"),
		PaymentMethod: models.PaymentMethod(r.FormValue("payment_method")),
		Receipt:       receipt,
	}

	deposit, err := (*billingService).Deposit(r.Context(), session, draft)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadGateway)
		return
	}

	middlewares.EncodeJSONResponseWithStatus(w, http.StatusCreated, deposit)
}
