package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"translationportal/internal/domain"
	"translationportal/internal/sqlinline"
)

type teamRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	BillingEmail *string `json:"billing_email"`
}

func (a *App) AdminTeamsCreate(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	billingEmail := ""
	if req.BillingEmail != nil {
		billingEmail = strings.ToLower(strings.TrimSpace(*req.BillingEmail))
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertTeam, *req.Name, description, billingEmail)
	var teamID string
	var createdAt time.Time
	if err := row.Scan(&teamID, &createdAt); err != nil {
		a.Logger.Error().Err(err).Msg("team create failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create team")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": teamID, "created_at": createdAt})
}

func (a *App) AdminTeamsList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListTeams, limit, offset)
	if err != nil {
		a.Logger.Error().Err(err).Msg("team list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list teams")
		return
	}
	defer rows.Close()
	teams := []teamDTO{}
	for rows.Next() {
		t, err := scanTeamDTO(rows)
		if err != nil {
			a.Logger.Error().Err(err).Msg("team list scan failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to list teams")
			return
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("team list rows failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list teams")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"teams": teams})
}

func (a *App) AdminTeamsGet(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectTeam, teamID)
	team, err := scanTeamDTO(row)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "team not found")
		return
	}
	a.json(w, http.StatusOK, team)
}

func (a *App) AdminTeamsPatch(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QPatchTeam, teamID, req.Name, req.Description, req.BillingEmail)
	var id string
	if err := row.Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "team not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id})
}

// AdminTeamsDelete removes an empty team. Teams that still have members get
// a 409 so membership must be reassigned first.
func (a *App) AdminTeamsDelete(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QDeleteTeamIfEmpty, teamID)
	var id string
	if err := row.Scan(&id); err == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		a.Logger.Error().Err(err).Msg("team delete failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete team")
		return
	}

	// No row deleted: either the team is missing or it still has members.
	checkRow := a.SQL.QueryRow(r.Context(), sqlinline.QSelectTeam, teamID)
	team, err := scanTeamDTO(checkRow)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "team not found")
		return
	}
	a.error(w, http.StatusConflict, "team_has_members",
		fmt.Sprintf("%s: %d still assigned", domain.ErrTeamHasMembers, team.MemberCount))
}

type teamCreditRequest struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
}

// AdminTeamsAddCredits tops up a team balance, appending the ledger row and
// moving the balance in one statement.
func (a *App) AdminTeamsAddCredits(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	var req teamCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	amount, err := creditAmount(req.Amount)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	description := req.Description
	if description == "" {
		description = "admin credit adjustment"
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QAddTeamCredits,
		teamID, a.currentUserID(r), amount, string(domain.CreditAdminAdjustment), description)
	var balance int64
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "team not found")
			return
		}
		a.Logger.Error().Err(err).Msg("team credit adjustment failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to adjust credits")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"team_id": teamID, "credit_balance": balance})
}
