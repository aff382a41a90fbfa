package mockstore

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"preconstruction/models"
)

// Параметры пагинации по умолчанию и верхняя граница per_page
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListOptions: общие параметры списков
type ListOptions struct {
	Page    int
	PerPage int
	View    models.View
	Sort    string
}

// normalize подставляет дефолты вместо неположительных page и per_page.
// per_page больше MaxPerPage урезается до MaxPerPage.
func (o ListOptions) normalize() ListOptions {
	if o.Page <= 0 {
		o.Page = DefaultPage
	}
	if o.PerPage <= 0 {
		o.PerPage = DefaultPerPage
	}
	if o.PerPage > MaxPerPage {
		o.PerPage = MaxPerPage
	}
	o.View = models.ParseView(string(o.View))
	return o
}

// Фильтры по ресурсам
type ProjectFilters struct {
	Search   string
	Name     string
	ByStatus string
}

type VendorFilters struct {
	Search string
}

type BidPackageFilters struct {
	Search string
}

// DocumentFilters: FolderID ограничивает выдачу детьми папки, RootOnly корнем
type DocumentFilters struct {
	Search   string
	FolderID *int
	RootOnly bool
}

type SyncLogFilters struct {
	Search string
}

// matchesSearch: регистронезависимый AND по токенам запроса
func matchesSearch(query string, fields ...string) bool {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join(fields, " "))
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

type sortTable[T any] struct {
	keys     map[string]func(a, b T) int
	fallback string
}

// sort упорядочивает items на месте. Ключ с '-' сортирует по убыванию.
// Неизвестный ключ равносилен отсутствию ключа.
func (st sortTable[T]) sort(items []T, key string) {
	desc := strings.HasPrefix(key, "-")
	cmpFn, ok := st.keys[strings.TrimPrefix(key, "-")]
	if !ok {
		if st.fallback == "" {
			return
		}
		desc = strings.HasPrefix(st.fallback, "-")
		cmpFn = st.keys[strings.TrimPrefix(st.fallback, "-")]
	}
	slices.SortStableFunc(items, func(a, b T) int {
		if desc {
			return cmpFn(b, a)
		}
		return cmpFn(a, b)
	})
}

func byName(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

func byTime(a, b time.Time) int {
	return a.Compare(b)
}

var projectSort = sortTable[models.Project]{
	keys: map[string]func(a, b models.Project) int{
		"name":       func(a, b models.Project) int { return byName(a.Name, b.Name) },
		"updated_at": func(a, b models.Project) int { return byTime(a.UpdatedAt, b.UpdatedAt) },
		"created_at": func(a, b models.Project) int { return byTime(a.CreatedAt, b.CreatedAt) },
	},
	fallback: "-updated_at",
}

var vendorSort = sortTable[models.Vendor]{
	keys: map[string]func(a, b models.Vendor) int{
		"name":       func(a, b models.Vendor) int { return byName(a.Name, b.Name) },
		"trade_name": func(a, b models.Vendor) int { return byName(a.TradeName, b.TradeName) },
		"updated_at": func(a, b models.Vendor) int { return byTime(a.UpdatedAt, b.UpdatedAt) },
	},
	fallback: "name",
}

var bidPackageSort = sortTable[models.BidPackage]{
	keys: map[string]func(a, b models.BidPackage) int{
		"title":      func(a, b models.BidPackage) int { return byName(a.Title, b.Title) },
		"due_date":   func(a, b models.BidPackage) int { return byTime(a.DueDate, b.DueDate) },
		"updated_at": func(a, b models.BidPackage) int { return byTime(a.UpdatedAt, b.UpdatedAt) },
	},
	fallback: "-due_date",
}

var documentSort = sortTable[models.DocumentEntry]{
	keys: map[string]func(a, b models.DocumentEntry) int{
		"name":       func(a, b models.DocumentEntry) int { return byName(a.Name, b.Name) },
		"updated_at": func(a, b models.DocumentEntry) int { return byTime(a.UpdatedAt, b.UpdatedAt) },
	},
	fallback: "name",
}

// paginate зажимает page в [1, total_pages] и возвращает срез страницы
func paginate[T any](items []T, page, perPage int) ([]T, models.Meta) {
	total := len(items)
	totalPages := int(math.Max(1, math.Ceil(float64(total)/float64(perPage))))
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	end := min(start+perPage, total)
	return items[start:end], models.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// listPage фильтрует и сортирует элементы, затем отдаёт проекцию нужной страницы
func listPage[T any](items []T, opts ListOptions, keep func(T) bool, st *sortTable[T], project func(models.View, T) models.Record) models.Page[models.Record] {
	opts = opts.normalize()
	selected := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			selected = append(selected, it)
		}
	}
	if st != nil {
		st.sort(selected, opts.Sort)
	}
	pageItems, meta := paginate(selected, opts.Page, opts.PerPage)
	records := make([]models.Record, 0, len(pageItems))
	for _, it := range pageItems {
		records = append(records, project(opts.View, it))
	}
	return models.Page[models.Record]{Items: records, Meta: meta}
}
