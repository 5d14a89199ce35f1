package router

import (
	"net/http"

	"github.com/Renal37/smm-storefront/internal/middlewares"
	"github.com/Renal37/smm-storefront/internal/models"
)

func GetDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.GetSessionFromContext(w, r)
	if !ok {
		return
	}

	dashboardService := middlewares.GetServiceFromContext[models.DashboardService](w, r, middlewares.DashboardServiceKey)
	if dashboardService == nil {
		return
	}

	dashboard, err := (*dashboardService).Get(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, dashboard)
}
