package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"preconstruction/db"
	"preconstruction/internal/mockstore"
	"preconstruction/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type syncLogRequest struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func validateSyncLogRequest(req *syncLogRequest) error {
	if !slices.Contains(models.SyncLogTypes, req.Type) {
		return errors.New("type must be one of " + strings.Join(models.SyncLogTypes, ", "))
	}
	if !slices.Contains(models.SyncLogStatuses, req.Status) {
		return errors.New("status must be one of " + strings.Join(models.SyncLogStatuses, ", "))
	}
	if strings.TrimSpace(req.Message) == "" {
		return errors.New("message is required")
	}
	return nil
}

// GetSyncLogsHandler обрабатывает GET /projects/{projectId}/sync-logs.
// Журнал локальный, в live-режиме он доступен только на чтение и только с токеном.
func (h *Handler) GetSyncLogsHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.live() {
		if _, ok := h.accessToken(w, r); !ok {
			return
		}
	}
	page := h.Store.ListSyncLogs(projectID, parseListOptions(r), mockstore.SyncLogFilters{
		Search: filterParam(r, "search"),
	})
	writeJSON(w, http.StatusOK, listResponse[models.SyncLogEntry]{
		ProjectID: projectID,
		Items:     page.Items,
		Meta:      page.Meta,
	})
}

// CreateSyncLogHandler обрабатывает POST /projects/{projectId}/sync-logs
func (h *Handler) CreateSyncLogHandler(w http.ResponseWriter, r *http.Request) {
	if h.live() {
		writeError(w, http.StatusMethodNotAllowed, "sync logs are read-only in live mode")
		return
	}
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, ok := h.Store.Project(projectID); !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("project %d not found", projectID))
		return
	}

	req := readJSON[syncLogRequest](w, r)
	if err := validateSyncLogRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry := h.Store.AppendSyncLog(projectID, mockstore.SyncLogInput{
		Type:    req.Type,
		Status:  req.Status,
		Message: strings.TrimSpace(req.Message),
	})
	h.recordSyncLog(r.Context(), &entry)
	writeJSON(w, http.StatusCreated, entry)
}

// GetSyncLogHistoryHandler обрабатывает GET /projects/{projectId}/sync-logs/history:
// записи, сохранённые в Postgres, в том числе из прошлых запусков
func (h *Handler) GetSyncLogHistoryHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.Journal == nil {
		writeError(w, http.StatusNotFound, "sync log journal is not configured")
		return
	}

	limit := defaultHistoryLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = min(v, maxHistoryLimit)
	}

	records, err := h.Journal.ProjectSyncLogs(r.Context(), projectID, limit)
	if err != nil {
		log.Printf("sync log history for project %d: %v", projectID, err)
		writeError(w, http.StatusInternalServerError, "Failed to read sync log history")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ProjectID int                `json:"project_id"`
		Items     []db.SyncLogRecord `json:"items"`
	}{ProjectID: projectID, Items: records})
}
