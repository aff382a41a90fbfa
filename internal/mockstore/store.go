package mockstore

import (
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"preconstruction/models"
)

const (
	uploadURL     = "https://mock-uploads.procore.local/uploads"
	uploadBucket  = "procore-mock-uploads"
	uploadExpires = 15 * time.Minute
)

// uploadNamespace: пространство имён для детерминированных UUID загрузок
var uploadNamespace = uuid.MustParse("6f1d3c52-2f0b-4b7e-9a43-3c1f6a0e8d11")

// Store: демо-замена внешнего хранилища. Все операции выполняются под одним
// мьютексом, поэтому порядок изменений совпадает с порядком вызовов.
type Store struct {
	mu        sync.Mutex
	data      *dataset
	uploads   map[string]models.Upload
	uploadSeq int
	now       func() time.Time
}

// Option настраивает Store при создании
type Option func(*Store)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New строит набор данных из фиксированных seed'ов. Паникует, если
// таблицы проекций нарушают вложенность minimal ⊆ normal ⊆ extended.
func New(opts ...Option) *Store {
	if err := validateViews(); err != nil {
		panic(err)
	}
	s := &Store{
		data:    generate(),
		uploads: make(map[string]models.Upload),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Company возвращает компанию-владельца всех проектов
func (s *Store) Company() models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.company
}

// Project возвращает проект по id
func (s *Store) Project(id int) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// ListProjects возвращает страницу проектов компании
func (s *Store) ListProjects(opts ListOptions, f ProjectFilters) models.Page[models.Record] {
	s.mu.Lock()
	defer s.mu.Unlock()
	keep := func(p models.Project) bool {
		if f.ByStatus != "" && !strings.EqualFold(p.Status, f.ByStatus) {
			return false
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(strings.TrimSpace(f.Name))) {
			return false
		}
		return matchesSearch(f.Search, p.Name, p.DisplayName, p.ProjectNumber, p.City, p.StateCode, p.Status)
	}
	return listPage(s.data.projects, opts, keep, &projectSort, projectView.project)
}

// ListVendors возвращает подрядчиков, связанных с проектом
func (s *Store) ListVendors(projectID int, opts ListOptions, f VendorFilters) models.Page[models.Record] {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := s.data.vendorIDsByProject[projectID]
	keep := func(v models.Vendor) bool {
		if _, ok := members[v.ID]; !ok {
			return false
		}
		return matchesSearch(f.Search, v.Name, v.TradeName, v.City, v.StateCode)
	}
	return listPage(s.data.vendors, opts, keep, &vendorSort, vendorView.project)
}

// ListBidPackages возвращает пакеты торгов проекта
func (s *Store) ListBidPackages(projectID int, opts ListOptions, f BidPackageFilters) models.Page[models.Record] {
	s.mu.Lock()
	defer s.mu.Unlock()
	keep := func(b models.BidPackage) bool {
		return matchesSearch(f.Search, b.Title, b.Status)
	}
	return listPage(s.data.bidPackagesByProj[projectID], opts, keep, &bidPackageSort, bidPackageView.project)
}

// ListDocuments возвращает файлы и папки проекта
func (s *Store) ListDocuments(projectID int, opts ListOptions, f DocumentFilters) models.Page[models.Record] {
	s.mu.Lock()
	defer s.mu.Unlock()
	keep := func(d models.DocumentEntry) bool {
		switch {
		case f.RootOnly && d.ParentID != nil:
			return false
		case f.FolderID != nil && (d.ParentID == nil || *d.ParentID != *f.FolderID):
			return false
		}
		return matchesSearch(f.Search, d.Name, d.Path)
	}
	return listPage(s.data.documentsByProject[projectID], opts, keep, &documentSort, documentView.project)
}

// ListSyncLogs отдаёт журнал в порядке вставки (новые первыми) без проекции
func (s *Store) ListSyncLogs(projectID int, opts ListOptions, f SyncLogFilters) models.Page[models.SyncLogEntry] {
	s.mu.Lock()
	defer s.mu.Unlock()
	opts = opts.normalize()
	logs := s.data.syncLogsByProject[projectID]
	selected := make([]models.SyncLogEntry, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		if matchesSearch(f.Search, logs[i].Type, logs[i].Status, logs[i].Message) {
			selected = append(selected, logs[i])
		}
	}
	items, meta := paginate(selected, opts.Page, opts.PerPage)
	return models.Page[models.SyncLogEntry]{Items: items, Meta: meta}
}

// SyncLogInput: новая запись журнала. CreatedAt нужен для детерминированных тестов.
type SyncLogInput struct {
	Type      string
	Status    string
	Message   string
	CreatedAt *time.Time
}

// AppendSyncLog присваивает следующий глобальный id; в выдаче запись окажется первой
func (s *Store) AppendSyncLog(projectID int, in SyncLogInput) models.SyncLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendSyncLogLocked(projectID, in)
}

func (s *Store) appendSyncLogLocked(projectID int, in SyncLogInput) models.SyncLogEntry {
	created := s.now().UTC()
	if in.CreatedAt != nil {
		created = *in.CreatedAt
	}
	entry := models.SyncLogEntry{
		ID:        s.data.nextSyncLogID,
		ProjectID: projectID,
		Type:      in.Type,
		Status:    in.Status,
		Message:   in.Message,
		CreatedAt: created,
	}
	s.data.nextSyncLogID++
	s.data.syncLogsByProject[projectID] = append(s.data.syncLogsByProject[projectID], entry)
	return entry
}

// AddBiddersResult: результат операции; при OK == false заполнено только Error
type AddBiddersResult struct {
	OK           bool                 `json:"ok"`
	Error        string               `json:"error,omitempty"`
	ProjectID    int                  `json:"project_id,omitempty"`
	BidPackageID int                  `json:"bid_package_id,omitempty"`
	VendorIDs    []int                `json:"vendor_ids,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	PushedAt     *time.Time           `json:"pushed_at,omitempty"`
	SyncLog      *models.SyncLogEntry `json:"sync_log,omitempty"`
}

// AddBidders отмечает приглашение подрядчиков в пакет торгов.
// Отсутствующий пакет это штатный результат, а не ошибка.
func (s *Store) AddBidders(projectID, bidPackageID int, vendorIDs []int, notes string) AddBiddersResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	packages := s.data.bidPackagesByProj[projectID]
	idx := -1
	for i := range packages {
		if packages[i].ID == bidPackageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return AddBiddersResult{
			OK:    false,
			Error: fmt.Sprintf("bid package %d not found in project %d", bidPackageID, projectID),
		}
	}

	now := s.now().UTC()
	packages[idx].UpdatedAt = now

	msg := fmt.Sprintf("Pushed %d bidder(s) to %s", len(vendorIDs), packages[idx].Title)
	if notes != "" {
		msg += ": " + notes
	}
	entry := s.appendSyncLogLocked(projectID, SyncLogInput{
		Type:      models.SyncBidderPush,
		Status:    models.SyncSuccess,
		Message:   msg,
		CreatedAt: &now,
	})

	return AddBiddersResult{
		OK:           true,
		ProjectID:    projectID,
		BidPackageID: bidPackageID,
		VendorIDs:    append([]int{}, vendorIDs...),
		Notes:        notes,
		PushedAt:     &now,
		SyncLog:      &entry,
	}
}

// UploadParams: параметры запроса билета на загрузку
type UploadParams struct {
	ProjectID   *int
	Filename    string
	ContentType string
}

// CreateUpload выдаёт билет на прямую загрузку (pre-signed POST). UUID выводится
// из счётчика, поэтому последовательность билетов воспроизводима.
func (s *Store) CreateUpload(p UploadParams) (models.Upload, *models.SyncLogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploadSeq++
	id := uuid.NewSHA1(uploadNamespace, []byte(fmt.Sprintf("upload-%d", s.uploadSeq))).String()

	contentType := p.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filename := path.Base(strings.TrimSpace(p.Filename))
	if filename == "." || filename == "/" {
		filename = "file"
	}

	now := s.now().UTC()
	up := models.Upload{
		UUID: id,
		URL:  uploadURL,
		Fields: map[string]string{
			"key":                   "uploads/" + id + "/" + filename,
			"Content-Type":          contentType,
			"bucket":                uploadBucket,
			"success_action_status": "201",
			"x-amz-algorithm":       "AWS4-HMAC-SHA256",
			"x-amz-credential":      "MOCKACCESSKEY/" + now.Format("20060102") + "/us-east-1/s3/aws4_request",
			"x-amz-date":            now.Format("20060102T150405Z"),
			"x-amz-expires":         fmt.Sprintf("%d", int(uploadExpires.Seconds())),
			"x-amz-signature":       strings.ReplaceAll(id, "-", ""),
		},
	}
	s.uploads[id] = up

	var entry *models.SyncLogEntry
	if p.ProjectID != nil {
		e := s.appendSyncLogLocked(*p.ProjectID, SyncLogInput{
			Type:      models.SyncDocumentsUpload,
			Status:    models.SyncInfo,
			Message:   "Upload ticket issued for " + filename,
			CreatedAt: &now,
		})
		entry = &e
	}
	return up, entry
}
