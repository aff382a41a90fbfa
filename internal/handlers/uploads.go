package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"preconstruction/internal/mockstore"
	"preconstruction/models"
)

type uploadRequest struct {
	ProjectID   *int   `json:"project_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func validateUploadRequest(req *uploadRequest) error {
	if strings.TrimSpace(req.Filename) == "" {
		return errors.New("filename is required")
	}
	if req.ProjectID != nil && *req.ProjectID <= 0 {
		return errors.New("project_id must be positive")
	}
	return nil
}

// CreateUploadHandler обрабатывает POST /uploads: выдаёт билет на прямую загрузку
func (h *Handler) CreateUploadHandler(w http.ResponseWriter, r *http.Request) {
	req := readJSON[uploadRequest](w, r)
	if err := validateUploadRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.live() {
		if req.ProjectID != nil {
			if _, ok := h.Store.Project(*req.ProjectID); !ok {
				writeError(w, http.StatusNotFound, fmt.Sprintf("project %d not found", *req.ProjectID))
				return
			}
		}
		up, entry := h.Store.CreateUpload(mockstore.UploadParams{
			ProjectID:   req.ProjectID,
			Filename:    req.Filename,
			ContentType: req.ContentType,
		})
		h.recordSyncLog(r.Context(), entry)
		writeJSON(w, http.StatusCreated, up)
		return
	}

	token, ok := h.accessToken(w, r)
	if !ok {
		return
	}
	up, err := h.Procore.CreateUpload(r.Context(), token, req.ProjectID, req.Filename, req.ContentType)
	if err != nil {
		h.upstreamError(w, "create upload", err)
		return
	}
	if req.ProjectID != nil {
		entry := h.Store.AppendSyncLog(*req.ProjectID, mockstore.SyncLogInput{
			Type:    models.SyncDocumentsUpload,
			Status:  models.SyncInfo,
			Message: "Upload ticket issued for " + req.Filename,
		})
		h.recordSyncLog(r.Context(), &entry)
	}
	writeJSON(w, http.StatusCreated, up)
}
