package models

import "time"

// View задаёт уровень проекции сущности в ответе
type View string

const (
	ViewMinimal  View = "minimal"
	ViewNormal   View = "normal"
	ViewExtended View = "extended"
)

// ParseView возвращает ViewNormal для пустого или неизвестного значения
func ParseView(s string) View {
	switch View(s) {
	case ViewMinimal, ViewNormal, ViewExtended:
		return View(s)
	default:
		return ViewNormal
	}
}

// Сущность Компании
type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Сущность Проекта
type Project struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	DisplayName   string    `json:"display_name"`
	ProjectNumber string    `json:"project_number"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	StateCode     string    `json:"state_code"`
	Zip           string    `json:"zip"`
	CountryCode   string    `json:"country_code"`
	Company       Company   `json:"company"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Сущность Подрядчика (vendor)
type Vendor struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	AbbreviatedName string    `json:"abbreviated_name"`
	City            string    `json:"city"`
	StateCode       string    `json:"state_code"`
	BusinessPhone   string    `json:"business_phone"`
	TradeID         int       `json:"trade_id"`
	TradeName       string    `json:"trade_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Статусы пакета торгов. Переходы между ними не проверяются.
const (
	BidPackageDraft    = "Draft"
	BidPackageOpen     = "Open"
	BidPackageClosed   = "Closed"
	BidPackageAwarded  = "Awarded"
	BidPackageCanceled = "Canceled"
)

// Сущность Пакета торгов
type BidPackage struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	DocumentFile   = "file"
	DocumentFolder = "folder"
)

// Сущность Документа. ParentID == nil означает корень дерева.
type DocumentEntry struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	DocumentType string    `json:"document_type"`
	ParentID     *int      `json:"parent_id"`
	Path         string    `json:"path"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Типы записей журнала синхронизации
const (
	SyncEstimateExport  = "estimate_export"
	SyncZoningExport    = "zoning_export"
	SyncBidderPush      = "bidder_push"
	SyncAuth            = "auth"
	SyncDirectorySync   = "directory_sync"
	SyncDocumentsUpload = "documents_upload"
)

// Статусы записей журнала синхронизации
const (
	SyncSuccess = "success"
	SyncWarning = "warning"
	SyncError   = "error"
	SyncInfo    = "info"
)

var (
	SyncLogTypes    = []string{SyncEstimateExport, SyncZoningExport, SyncBidderPush, SyncAuth, SyncDirectorySync, SyncDocumentsUpload}
	SyncLogStatuses = []string{SyncSuccess, SyncWarning, SyncError, SyncInfo}
)

// Запись журнала синхронизации
type SyncLogEntry struct {
	ID        int       `json:"id"`
	ProjectID int       `json:"project_id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Одноразовый билет на загрузку файла (pre-signed POST)
type Upload struct {
	UUID   string            `json:"uuid"`
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// Record: спроецированная сущность
type Record map[string]any

// Meta описывает страницу выдачи
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Page: общий конверт списка
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}
