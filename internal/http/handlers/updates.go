package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"translationportal/internal/domain"
	"translationportal/internal/sqlinline"
)

type createUpdateRequest struct {
	Note       string  `json:"note"`
	UpdateType string  `json:"update_type"`
	NewStatus  *string `json:"new_status"`
}

// UpdatesCreate appends a progress update to an order. A status_change update
// also moves the parent order to the new status, in the same statement.
func (a *App) UpdatesCreate(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	var req createUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Note) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "note is required")
		return
	}
	updateType := domain.UpdateType(req.UpdateType)
	if req.UpdateType == "" {
		updateType = domain.UpdateNote
	}
	if !updateType.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid update_type")
		return
	}

	p, _ := a.currentPrincipal(r)
	var newStatus *string
	if updateType == domain.UpdateStatusChange {
		if req.NewStatus == nil {
			a.error(w, http.StatusBadRequest, "bad_request", "status_change updates require new_status")
			return
		}
		row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectOrderStatus, orderID)
		var current, ownerID string
		if err := row.Scan(&current, &ownerID); err != nil {
			a.error(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		if !p.IsAdmin() && ownerID != p.UserID {
			a.error(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		if err := domain.ValidateTransition(domain.OrderStatus(current), domain.OrderStatus(*req.NewStatus), p.IsAdmin()); err != nil {
			a.error(w, http.StatusConflict, "invalid_transition", err.Error())
			return
		}
		newStatus = req.NewStatus
	} else if req.NewStatus != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "new_status is only valid on status_change updates")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUpdate,
		orderID, p.UserID, req.Note, string(updateType), newStatus)
	var (
		updateID, orderStatus string
		createdAt             time.Time
	)
	if err := row.Scan(&updateID, &orderStatus, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		a.Logger.Error().Err(err).Msg("update insert failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create update")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"id":           updateID,
		"order_id":     orderID,
		"order_status": orderStatus,
		"created_at":   createdAt,
	})
}

func (a *App) UpdatesList(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	// Scoped read first: clients only see updates on their own orders.
	orderRow := a.SQL.QueryRow(r.Context(), sqlinline.QSelectOrderStatus, orderID)
	var status, ownerID string
	if err := orderRow.Scan(&status, &ownerID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if p, _ := a.currentPrincipal(r); !p.IsAdmin() && ownerID != p.UserID {
		a.error(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListUpdatesForOrder, orderID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("update list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list updates")
		return
	}
	defer rows.Close()
	updates := []updateDTO{}
	for rows.Next() {
		var u updateDTO
		if err := rows.Scan(&u.ID, &u.OrderID, &u.AuthorID, &u.Note, &u.UpdateType, &u.NewStatus, &u.CreatedAt, &u.AuthorName); err != nil {
			a.Logger.Error().Err(err).Msg("update list scan failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to list updates")
			return
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("update list rows failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list updates")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"updates": updates})
}
