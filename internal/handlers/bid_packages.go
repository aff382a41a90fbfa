package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"preconstruction/internal/mockstore"
	"preconstruction/models"
)

type addBiddersRequest struct {
	BidPackageID int    `json:"bidPackageId"`
	VendorIDs    []int  `json:"vendorIds"`
	Notes        string `json:"notes"`
}

func validateAddBidders(req *addBiddersRequest) error {
	if req.BidPackageID <= 0 {
		return errors.New("bidPackageId is required")
	}
	if len(req.VendorIDs) == 0 {
		return errors.New("vendorIds must be a non-empty array")
	}
	for _, id := range req.VendorIDs {
		if id <= 0 {
			return errors.New("vendorIds must contain positive ids")
		}
	}
	return nil
}

// AddBiddersHandler обрабатывает POST /projects/{projectId}/bid-packages/add-bidders
func (h *Handler) AddBiddersHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := readJSON[addBiddersRequest](w, r)
	if err := validateAddBidders(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Notes = strings.TrimSpace(req.Notes)

	if !h.live() {
		res := h.Store.AddBidders(projectID, req.BidPackageID, req.VendorIDs, req.Notes)
		if !res.OK {
			writeError(w, http.StatusNotFound, res.Error)
			return
		}
		h.recordSyncLog(r.Context(), res.SyncLog)
		writeJSON(w, http.StatusOK, res)
		return
	}

	token, ok := h.accessToken(w, r)
	if !ok {
		return
	}
	if err := h.Procore.AddBidders(r.Context(), token, projectID, req.BidPackageID, req.VendorIDs, req.Notes); err != nil {
		h.upstreamError(w, "add bidders", err)
		return
	}

	msg := fmt.Sprintf("Pushed %d bidder(s) to bid package %d", len(req.VendorIDs), req.BidPackageID)
	if req.Notes != "" {
		msg += ": " + req.Notes
	}
	entry := h.Store.AppendSyncLog(projectID, mockstore.SyncLogInput{
		Type:    models.SyncBidderPush,
		Status:  models.SyncSuccess,
		Message: msg,
	})
	h.recordSyncLog(r.Context(), &entry)

	pushedAt := entry.CreatedAt
	writeJSON(w, http.StatusOK, mockstore.AddBiddersResult{
		OK:           true,
		ProjectID:    projectID,
		BidPackageID: req.BidPackageID,
		VendorIDs:    req.VendorIDs,
		Notes:        req.Notes,
		PushedAt:     &pushedAt,
		SyncLog:      &entry,
	})
}
