package router

import (
	"net/http"
	"strconv"

	"github.com/Renal37/smm-storefront/internal/middlewares"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/pricing"
	"github.com/go-chi/chi/v5"
)

// serviceResponse - услуга каталога вместе с нормализованной ценой за единицу.
type serviceResponse struct {
	models.Service
	Rate        float64 `json:"rate"`
	DisplayRate string  `json:"display_rate"`
}

func newServiceResponse(service models.Service, currency pricing.Currency) serviceResponse {
	rate := pricing.NormalizeRate(service.Price, currency)
	return serviceResponse{Service: service, Rate: rate.Value, DisplayRate: rate.Display}
}

func ListServices(w http.ResponseWriter, r *http.Request) {
	catalogService := middlewares.GetServiceFromContext[models.CatalogService](w, r, middlewares.CatalogServiceKey)
	if catalogService == nil {
		return
	}

	query := r.URL.Query()
	filter := models.CatalogFilter{
		Category: query.Get("category"),
		Query:    query.Get("q"),
	}

	list, err := (*catalogService).List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadGateway)
		return
	}

	currency := pricing.LookupCurrency(query.Get("currency"))

	response := make([]serviceResponse, 0, len(list))
	for _, service := range list {
		response = append(response, newServiceResponse(service, currency))
	}

	middlewares.EncodeJSONResponse(w, response)
}

func GetService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middlewares.WriteError(w, http.StatusBadRequest, "service id must be a number")
		return
	}

	catalogService := middlewares.GetServiceFromContext[models.CatalogService](w, r, middlewares.CatalogServiceKey)
	if catalogService == nil {
		return
	}

	service, err := (*catalogService).Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadGateway)
		return
	}

	middlewares.EncodeJSONResponse(w, newServiceResponse(service, pricing.LookupCurrency(r.URL.Query().Get("currency"))))
}
