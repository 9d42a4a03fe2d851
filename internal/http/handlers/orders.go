package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"translationportal/internal/domain"
	"translationportal/internal/langs"
	"translationportal/internal/pricing"
	"translationportal/internal/sqlinline"
	"translationportal/pkg/zip"
)

type createOrderRequest struct {
	FileName        string   `json:"file_name"`
	FileFormat      string   `json:"file_format"`
	FileSize        int64    `json:"file_size"`
	WordCount       int64    `json:"word_count"`
	CharCount       int64    `json:"char_count"`
	ImageCount      int      `json:"image_count"`
	Subject         string   `json:"subject"`
	SourceLanguage  string   `json:"source_language"`
	TargetLanguages []string `json:"target_languages"`
	Workflow        string   `json:"workflow"`
	Priority        string   `json:"priority"`
	DueDate         *string  `json:"due_date"`
}

func (a *App) OrdersCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.FileName) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "file_name is required")
		return
	}
	if req.CharCount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "char_count must be positive")
		return
	}
	workflow := pricing.Workflow(req.Workflow)
	if !workflow.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "workflow must be tier1, tier2 or tier3")
		return
	}
	targets, err := langs.NormalizeAll(req.TargetLanguages)
	if err != nil || len(targets) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one valid target language is required")
		return
	}
	source, err := langs.Normalize(req.SourceLanguage)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid source language")
		return
	}
	priority := domain.OrderPriority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid priority")
		return
	}
	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "due_date must be RFC 3339")
			return
		}
		dueDate = &t
	}

	quote := pricing.Estimate(req.CharCount, len(targets), workflow)
	description := fmt.Sprintf("translation of %s (%s, %d languages)", req.FileName, workflow.Label(), len(targets))

	row := a.SQL.QueryRow(r.Context(), sqlinline.QCreateOrderWithDebit,
		a.currentUserID(r), quote.CreditsRequired, description,
		req.FileName, strings.ToLower(req.FileFormat), req.FileSize,
		req.WordCount, req.CharCount, req.ImageCount,
		req.Subject, source, targets, string(workflow), quote.TotalCost,
		string(priority), dueDate)
	var (
		orderID, status string
		createdAt       time.Time
	)
	if err := row.Scan(&orderID, &status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusPaymentRequired, "insufficient_credits",
				fmt.Sprintf("%s: order requires %d", domain.ErrInsufficientCredits, quote.CreditsRequired))
			return
		}
		a.Logger.Error().Err(err).Msg("order create failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create order")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"id":               orderID,
		"status":           status,
		"credits_required": quote.CreditsRequired,
		"total_cost":       quote.TotalCost,
		"created_at":       createdAt,
	})
}

type quoteRequest struct {
	CharCount       int64    `json:"char_count"`
	TargetLanguages []string `json:"target_languages"`
	Workflow        string   `json:"workflow"`
}

// OrdersQuote prices an order without creating it.
func (a *App) OrdersQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	workflow := pricing.Workflow(req.Workflow)
	if !workflow.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "workflow must be tier1, tier2 or tier3")
		return
	}
	targets, err := langs.NormalizeAll(req.TargetLanguages)
	if err != nil || len(targets) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one valid target language is required")
		return
	}
	a.json(w, http.StatusOK, pricing.Estimate(req.CharCount, len(targets), workflow))
}

func (a *App) OrdersList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListOrdersForUser, a.currentUserID(r), limit, offset)
	if err != nil {
		a.Logger.Error().Err(err).Msg("order list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list orders")
		return
	}
	orders, err := collectOrderDTOs(rows)
	if err != nil {
		a.Logger.Error().Err(err).Msg("order list scan failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list orders")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"orders": orders})
}

func (a *App) OrdersGet(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectOrder, orderID, a.ownerScope(r))
	order, err := scanOrderDTO(row)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	a.json(w, http.StatusOK, order)
}

type patchOrderRequest struct {
	Status     *string         `json:"status"`
	Priority   *string         `json:"priority"`
	Completion *int            `json:"completion"`
	DueDate    json.RawMessage `json:"due_date"`
	AssigneeID json.RawMessage `json:"assignee_id"`
}

func (a *App) OrdersPatch(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	var req patchOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	p, _ := a.currentPrincipal(r)

	if req.Priority != nil && !domain.OrderPriority(*req.Priority).Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid priority")
		return
	}
	if req.Completion != nil && (*req.Completion < 0 || *req.Completion > 100) {
		a.error(w, http.StatusBadRequest, "bad_request", "completion must be between 0 and 100")
		return
	}

	if req.Status != nil {
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
		if err := domain.ValidateTransition(domain.OrderStatus(current), domain.OrderStatus(*req.Status), p.IsAdmin()); err != nil {
			a.error(w, http.StatusConflict, "invalid_transition", err.Error())
			return
		}
	}

	setDue, due, err := nullableTime(req.DueDate)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "due_date must be RFC 3339 or null")
		return
	}
	setAssignee, assignee := nullableString(req.AssigneeID)
	if setAssignee && !p.IsAdmin() {
		a.error(w, http.StatusForbidden, "forbidden", "only admins may assign reviewers")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QPatchOrder,
		orderID, a.ownerScope(r), req.Status, req.Priority, req.Completion,
		setDue, due, setAssignee, assignee)
	var (
		id, status, priority string
		completion           int
		updatedAt            time.Time
	)
	if err := row.Scan(&id, &status, &priority, &completion, &updatedAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"id":         id,
		"status":     status,
		"priority":   priority,
		"completion": completion,
		"updated_at": updatedAt,
	})
}

// OrderDownload packs the finished deliverables into a ZIP archive, one file
// per target language. Orders still in the pipeline get a 409.
func (a *App) OrderDownload(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectOrder, orderID, a.ownerScope(r))
	order, err := scanOrderDTO(row)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if domain.OrderStatus(order.Status) != domain.StatusComplete {
		a.error(w, http.StatusConflict, "not_complete", "order is not complete yet")
		return
	}

	base := strings.TrimSuffix(order.FileName, "."+order.FileFormat)
	files := make([]zip.File, 0, len(order.TargetLanguages))
	for _, lang := range order.TargetLanguages {
		note := fmt.Sprintf("Translated delivery for %s\nTarget language: %s (%s)\nWorkflow: %s\nCompleted: %s\n",
			order.FileName, lang, langs.DisplayName(lang),
			pricing.Workflow(order.Workflow).Label(), order.UpdatedAt.Format(time.RFC3339))
		files = append(files, zip.File{
			Name: fmt.Sprintf("%s.%s.%s", base, lang, order.FileFormat),
			Data: []byte(note),
		})
	}
	archive, err := zip.Archive(files)
	if err != nil {
		a.Logger.Error().Err(err).Msg("delivery archive failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+"-translated.zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

// ownerScope returns the user id to scope order reads to, or nil for admins.
func (a *App) ownerScope(r *http.Request) *string {
	p, ok := a.currentPrincipal(r)
	if !ok || p.IsAdmin() {
		return nil
	}
	return &p.UserID
}

func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 1 {
		offset = (v - 1) * limit
	}
	return limit, offset
}

// nullableTime distinguishes an absent JSON field from an explicit null: the
// first return says whether the column should be set at all.
func nullableTime(raw json.RawMessage) (bool, *time.Time, error) {
	if len(raw) == 0 {
		return false, nil, nil
	}
	if string(raw) == "null" {
		return true, nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false, nil, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return false, nil, err
	}
	return true, &t, nil
}

func nullableString(raw json.RawMessage) (bool, *string) {
	if len(raw) == 0 {
		return false, nil
	}
	if string(raw) == "null" {
		return true, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return false, nil
	}
	return true, &s
}
