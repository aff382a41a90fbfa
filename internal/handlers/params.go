package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"preconstruction/internal/mockstore"
	"preconstruction/models"
)

// parseListOptions парсит page, per_page, view и sort. Некорректные значения
// заменяются дефолтами внутри хранилища.
func parseListOptions(r *http.Request) mockstore.ListOptions {
	q := r.URL.Query()
	opts := mockstore.ListOptions{
		View: models.ParseView(q.Get("view")),
		Sort: strings.TrimSpace(q.Get("sort")),
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = p
	}
	if pp, err := strconv.Atoi(q.Get("per_page")); err == nil {
		opts.PerPage = pp
	}
	return opts
}

func filterParam(r *http.Request, name string) string {
	return r.URL.Query().Get("filters[" + name + "]")
}

// forwardQuery оставляет только параметры, которые понимает Procore
func forwardQuery(r *http.Request) url.Values {
	out := url.Values{}
	for key, vals := range r.URL.Query() {
		switch {
		case key == "page", key == "per_page", key == "view", key == "sort",
			strings.HasPrefix(key, "filters["):
			out[key] = append([]string(nil), vals...)
		}
	}
	return out
}

func projectIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "projectId"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid project id")
	}
	return id, nil
}

// parseDocumentFilters: filters[folder_id]=root означает корень дерева
func parseDocumentFilters(r *http.Request) (mockstore.DocumentFilters, error) {
	f := mockstore.DocumentFilters{Search: filterParam(r, "search")}
	folder := strings.TrimSpace(filterParam(r, "folder_id"))
	switch folder {
	case "":
	case "root":
		f.RootOnly = true
	default:
		id, err := strconv.Atoi(folder)
		if err != nil || id <= 0 {
			return f, errors.New("filters[folder_id] must be a positive integer or \"root\"")
		}
		f.FolderID = &id
	}
	return f, nil
}
