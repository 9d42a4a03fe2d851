package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"translationportal/internal/middleware"
	"translationportal/internal/sqlinline"
)

// V1OrdersList is the external order listing. Responses wrap the rows in the
// totalCount/results envelope so integrators can paginate.
func (a *App) V1OrdersList(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.APIAccountFromContext(r.Context())
	if accountID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing api key context")
		return
	}
	limit, offset := pagination(r)

	countRow := a.SQL.QueryRow(r.Context(), sqlinline.QCountOrdersForAccount, accountID)
	var total int64
	if err := countRow.Scan(&total); err != nil {
		a.Logger.Error().Err(err).Msg("v1 order count failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list orders")
		return
	}

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListOrdersForAccount, accountID, limit, offset)
	if err != nil {
		a.Logger.Error().Err(err).Msg("v1 order list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list orders")
		return
	}
	orders, err := collectOrderDTOs(rows)
	if err != nil {
		a.Logger.Error().Err(err).Msg("v1 order list scan failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list orders")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"totalCount": total,
		"results":    orders,
	})
}

func (a *App) V1OrdersGet(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.APIAccountFromContext(r.Context())
	if accountID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing api key context")
		return
	}
	orderID := chi.URLParam(r, "orderID")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectOrderForAccount, orderID, accountID)
	order, err := scanOrderDTO(row)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	a.json(w, http.StatusOK, order)
}
