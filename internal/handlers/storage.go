package handlers

import (
	"context"
	"encoding/json"
	"net/url"

	"preconstruction/db"
	"preconstruction/internal/mockstore"
	"preconstruction/models"
)

// StorageInterface: демо-хранилище (mock mode)
type StorageInterface interface {
	Company() models.Company
	Project(id int) (models.Project, bool)

	ListProjects(opts mockstore.ListOptions, f mockstore.ProjectFilters) models.Page[models.Record]
	ListVendors(projectID int, opts mockstore.ListOptions, f mockstore.VendorFilters) models.Page[models.Record]
	ListBidPackages(projectID int, opts mockstore.ListOptions, f mockstore.BidPackageFilters) models.Page[models.Record]
	ListDocuments(projectID int, opts mockstore.ListOptions, f mockstore.DocumentFilters) models.Page[models.Record]
	ListSyncLogs(projectID int, opts mockstore.ListOptions, f mockstore.SyncLogFilters) models.Page[models.SyncLogEntry]

	AppendSyncLog(projectID int, in mockstore.SyncLogInput) models.SyncLogEntry
	AddBidders(projectID, bidPackageID int, vendorIDs []int, notes string) mockstore.AddBiddersResult
	CreateUpload(p mockstore.UploadParams) (models.Upload, *models.SyncLogEntry)
}

// ProcoreAPI: живой Procore (live mode)
type ProcoreAPI interface {
	CompanyID() string
	ListPage(ctx context.Context, token, path string, query url.Values) (models.Page[json.RawMessage], error)
	AddBidders(ctx context.Context, token string, projectID, bidPackageID int, vendorIDs []int, notes string) error
	CreateUpload(ctx context.Context, token string, projectID *int, filename, contentType string) (models.Upload, error)
}

// SyncLogJournal: необязательная копия журнала синхронизации в Postgres
type SyncLogJournal interface {
	RecordSyncLog(ctx context.Context, e models.SyncLogEntry) error
	ProjectSyncLogs(ctx context.Context, projectID, limit int) ([]db.SyncLogRecord, error)
}
