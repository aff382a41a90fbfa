package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"preconstruction/internal/mockstore"
	"preconstruction/models"
)

type projectsResponse[T any] struct {
	Connected bool           `json:"connected"`
	Company   models.Company `json:"company"`
	Items     []T            `json:"items"`
	Meta      models.Meta    `json:"meta"`
}

// GetProjectsHandler обрабатывает GET /projects
func (h *Handler) GetProjectsHandler(w http.ResponseWriter, r *http.Request) {
	if !h.live() {
		filters := mockstore.ProjectFilters{
			Search:   filterParam(r, "search"),
			Name:     filterParam(r, "name"),
			ByStatus: filterParam(r, "by_status"),
		}
		page := h.Store.ListProjects(parseListOptions(r), filters)
		writeJSON(w, http.StatusOK, projectsResponse[models.Record]{
			Connected: false,
			Company:   h.Store.Company(),
			Items:     page.Items,
			Meta:      page.Meta,
		})
		return
	}

	companyID, err := strconv.Atoi(h.Procore.CompanyID())
	if err != nil || companyID <= 0 {
		log.Printf("projects: invalid PROCORE_COMPANY_ID %q", h.Procore.CompanyID())
		writeError(w, http.StatusInternalServerError, "Procore company is not configured")
		return
	}
	token, ok := h.accessToken(w, r)
	if !ok {
		return
	}

	query := forwardQuery(r)
	query.Set("company_id", strconv.Itoa(companyID))
	page, err := h.Procore.ListPage(r.Context(), token, "/rest/v1.0/projects", query)
	if err != nil {
		h.upstreamError(w, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projectsResponse[json.RawMessage]{
		Connected: true,
		Company:   models.Company{ID: companyID},
		Items:     page.Items,
		Meta:      page.Meta,
	})
}
