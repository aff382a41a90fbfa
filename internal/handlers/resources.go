package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"preconstruction/internal/mockstore"
	"preconstruction/models"
)

// proxyList отдаёт список из Procore в том же конверте, что и mock-режим
func (h *Handler) proxyList(w http.ResponseWriter, r *http.Request, projectID int, path string) {
	token, ok := h.accessToken(w, r)
	if !ok {
		return
	}
	page, err := h.Procore.ListPage(r.Context(), token, path, forwardQuery(r))
	if err != nil {
		h.upstreamError(w, "list "+path, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[json.RawMessage]{
		ProjectID: projectID,
		Items:     page.Items,
		Meta:      page.Meta,
	})
}

func writePage(w http.ResponseWriter, projectID int, page models.Page[models.Record]) {
	writeJSON(w, http.StatusOK, listResponse[models.Record]{
		ProjectID: projectID,
		Items:     page.Items,
		Meta:      page.Meta,
	})
}

// GetVendorsHandler обрабатывает GET /projects/{projectId}/vendors
func (h *Handler) GetVendorsHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.live() {
		h.proxyList(w, r, projectID, fmt.Sprintf("/rest/v1.0/projects/%d/vendors", projectID))
		return
	}
	page := h.Store.ListVendors(projectID, parseListOptions(r), mockstore.VendorFilters{
		Search: filterParam(r, "search"),
	})
	writePage(w, projectID, page)
}

// GetBidPackagesHandler обрабатывает GET /projects/{projectId}/bid-packages
func (h *Handler) GetBidPackagesHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.live() {
		h.proxyList(w, r, projectID, fmt.Sprintf("/rest/v1.0/projects/%d/bid_packages", projectID))
		return
	}
	page := h.Store.ListBidPackages(projectID, parseListOptions(r), mockstore.BidPackageFilters{
		Search: filterParam(r, "search"),
	})
	writePage(w, projectID, page)
}

// GetDocumentsHandler обрабатывает GET /projects/{projectId}/documents
func (h *Handler) GetDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters, err := parseDocumentFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.live() {
		h.proxyList(w, r, projectID, fmt.Sprintf("/rest/v1.0/projects/%d/documents", projectID))
		return
	}
	page := h.Store.ListDocuments(projectID, parseListOptions(r), filters)
	writePage(w, projectID, page)
}
