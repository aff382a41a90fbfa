package mockstore

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"preconstruction/models"
)

// Отдельный seed на каждый генератор: изменение одной сущности
// не сдвигает последовательность для остальных.
const (
	projectSeed    uint32 = 20240611
	vendorSeed     uint32 = 1337
	membershipSeed uint32 = 4242
	bidPackageSeed uint32 = 7331
	documentSeed   uint32 = 9157
	syncLogSeed    uint32 = 31337
)

const (
	firstProjectID    = 124512
	firstVendorID     = 9001
	firstBidPackageID = 770001
	firstDocumentID   = 500001

	vendorCount       = 84
	maxNameAttempts   = 20
	minVendorsPerProj = 26
	maxVendorsPerProj = 47
)

// seedAnchor: фиксированная точка отсчёта для всех относительных дат
var seedAnchor = time.Date(2025, time.March, 14, 15, 0, 0, 0, time.UTC)

type geo struct {
	city  string
	state string
	zip   string
}

var geoPool = []geo{
	{"Denver", "CO", "802"},
	{"Austin", "TX", "787"},
	{"Phoenix", "AZ", "850"},
	{"Seattle", "WA", "981"},
	{"Portland", "OR", "972"},
	{"Salt Lake City", "UT", "841"},
	{"Boise", "ID", "837"},
	{"Sacramento", "CA", "958"},
	{"San Diego", "CA", "921"},
	{"Las Vegas", "NV", "891"},
	{"Albuquerque", "NM", "871"},
	{"Dallas", "TX", "752"},
	{"Houston", "TX", "770"},
	{"Nashville", "TN", "372"},
	{"Charlotte", "NC", "282"},
	{"Atlanta", "GA", "303"},
	{"Raleigh", "NC", "276"},
	{"Tampa", "FL", "336"},
}

var streetPool = []string{
	"Market St", "Broadway", "Lincoln Ave", "Cedar Rd", "Industrial Pkwy", "Main St",
	"Riverside Dr", "Commerce Blvd", "Oak Ln", "Harbor Way", "Summit Ave", "Mesa Dr",
}

var projectNames = []string{
	"Riverside Medical Office Building",
	"Cedar Park Elementary Expansion",
	"Harbor Point Mixed-Use Tower",
	"Northgate Logistics Center",
	"Summit Ridge Apartments",
	"Lakeview Community Library",
	"Mesa Verde Fire Station 12",
	"Union Station Parking Structure",
	"Westfield Retail Renovation",
	"Pine Hollow Senior Living",
	"Granite Falls Water Treatment Plant",
	"Old Town Hotel Conversion",
}

type trade struct {
	id   int
	name string
}

var tradePool = []trade{
	{1, "Concrete"},
	{2, "Electrical"},
	{3, "Plumbing"},
	{4, "Mechanical"},
	{5, "Roofing"},
	{6, "Drywall"},
	{7, "Steel"},
	{8, "Masonry"},
	{9, "Glazing"},
	{10, "Flooring"},
	{11, "Painting"},
	{12, "Excavation"},
	{13, "Landscaping"},
	{14, "Fire Protection"},
	{15, "Carpentry"},
}

var vendorPrefixes = []string{
	"Summit", "Apex", "Pioneer", "Keystone", "Frontier", "Cornerstone", "Pinnacle", "Ironclad",
	"Blue Ridge", "Granite", "Evergreen", "Redline", "Northstar", "Cascade", "Sterling",
	"Heritage", "Titan", "Meridian", "Prairie", "Lone Peak",
}

var vendorSuffixes = []string{
	"Contractors", "Builders", "Services", "Group", "Co.", "Solutions", "Partners",
	"Specialists", "Works", "Systems", "Inc.", "LLC", "Associates", "Enterprises",
	"Industries", "Construction",
}

var bidScopes = []string{
	"Site Work & Utilities", "Concrete Foundations", "Structural Steel", "Masonry",
	"Roofing & Waterproofing", "Curtain Wall & Glazing", "Interior Framing & Drywall",
	"Flooring", "Painting & Finishes", "Plumbing", "HVAC", "Electrical", "Fire Sprinklers",
	"Elevators", "Landscaping", "Casework & Millwork",
}

var bidStatuses = []string{
	models.BidPackageDraft, models.BidPackageOpen, models.BidPackageClosed,
	models.BidPackageAwarded, models.BidPackageCanceled,
}

type folderTemplate struct {
	name  string
	code  string
	ext   string
	descs []string
}

var folderPool = []folderTemplate{
	{"Drawings", "A", "pdf", []string{"Floor Plan", "Elevations", "Sections", "Site Plan", "Details", "Roof Plan"}},
	{"Specifications", "SPEC", "pdf", []string{"Division 03 Concrete", "Division 05 Metals", "Division 09 Finishes", "Division 26 Electrical"}},
	{"Submittals", "SUB", "pdf", []string{"Shop Drawings", "Product Data", "Samples Log", "Mix Design"}},
	{"Contracts", "CTR", "docx", []string{"Prime Agreement", "Subcontract Template", "Change Order Log", "Insurance Certificates"}},
	{"Photos", "IMG", "jpg", []string{"Site Walk", "Existing Conditions", "Survey Markers", "Utility Locates"}},
	{"RFIs", "RFI", "pdf", []string{"Door Hardware", "Slab Elevation", "Beam Conflict", "Ceiling Heights"}},
}

var syncMessages = map[string][]string{
	models.SyncEstimateExport:  {"Estimate exported to budget", "Estimate line items synced to cost codes", "Estimate revision exported"},
	models.SyncZoningExport:    {"Zoning review exported to documents", "Zoning summary attached to project"},
	models.SyncBidderPush:      {"Bidders pushed to bid package", "Bid invitations queued"},
	models.SyncAuth:            {"Procore connection refreshed", "OAuth token renewed"},
	models.SyncDirectorySync:   {"Vendor directory synchronized", "Project directory refreshed"},
	models.SyncDocumentsUpload: {"Documents uploaded", "Drawing set uploaded"},
}

type dataset struct {
	company            models.Company
	projects           []models.Project
	vendors            []models.Vendor
	vendorIDsByProject map[int]map[int]struct{}
	bidPackagesByProj  map[int][]models.BidPackage
	documentsByProject map[int][]models.DocumentEntry
	syncLogsByProject  map[int][]models.SyncLogEntry // от старых к новым
	nextSyncLogID      int
}

func daysFrom(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// generate строит весь набор данных. Порядок вызовов важен:
// счётчики на проект берутся из последовательности генератора.
func generate() *dataset {
	ds := &dataset{
		company:            models.Company{ID: 4264807, Name: "Summit Ridge Builders"},
		vendorIDsByProject: make(map[int]map[int]struct{}),
		bidPackagesByProj:  make(map[int][]models.BidPackage),
		documentsByProject: make(map[int][]models.DocumentEntry),
		syncLogsByProject:  make(map[int][]models.SyncLogEntry),
		nextSyncLogID:      1,
	}

	ds.projects = generateProjects(ds.company)
	ds.vendors = generateVendors()

	memberRand := newRand(membershipSeed)
	for _, p := range ds.projects {
		ds.vendorIDsByProject[p.ID] = pickVendors(memberRand, ds.vendors)
	}

	bidRand := newRand(bidPackageSeed)
	nextBidID := firstBidPackageID
	for _, p := range ds.projects {
		var packages []models.BidPackage
		packages, nextBidID = generateBidPackages(bidRand, nextBidID)
		ds.bidPackagesByProj[p.ID] = packages
	}

	docRand := newRand(documentSeed)
	nextDocID := firstDocumentID
	for _, p := range ds.projects {
		var docs []models.DocumentEntry
		docs, nextDocID = generateDocuments(docRand, nextDocID)
		ds.documentsByProject[p.ID] = docs
	}

	logRand := newRand(syncLogSeed)
	for _, p := range ds.projects {
		var logs []models.SyncLogEntry
		logs, ds.nextSyncLogID = generateSyncLogs(logRand, p.ID, ds.nextSyncLogID)
		ds.syncLogsByProject[p.ID] = logs
	}

	return ds
}

func generateProjects(company models.Company) []models.Project {
	r := newRand(projectSeed)
	projects := make([]models.Project, 0, len(projectNames))
	for i, name := range projectNames {
		g := pick(r, geoPool)
		created := daysFrom(seedAnchor, -r.between(60, 420))
		updated := daysFrom(created, r.between(1, 55))
		status := "Active"
		if r.float() < 0.4 {
			status = "Preconstruction"
		}
		number := fmt.Sprintf("2025-%03d", i+1)
		projects = append(projects, models.Project{
			ID:            firstProjectID + i,
			Name:          name,
			DisplayName:   number + " - " + name,
			ProjectNumber: number,
			Address:       fmt.Sprintf("%d %s", r.between(100, 9899), pick(r, streetPool)),
			City:          g.city,
			StateCode:     g.state,
			Zip:           fmt.Sprintf("%s%02d", g.zip, r.intn(100)),
			CountryCode:   "US",
			Company:       company,
			Status:        status,
			CreatedAt:     created,
			UpdatedAt:     updated,
		})
	}
	return projects
}

func generateVendors() []models.Vendor {
	r := newRand(vendorSeed)
	seen := make(map[string]struct{}, vendorCount)
	vendors := make([]models.Vendor, 0, vendorCount)
	for i := 0; i < vendorCount; i++ {
		t := pick(r, tradePool)
		name := ""
		for attempt := 0; attempt < maxNameAttempts; attempt++ {
			candidate := fmt.Sprintf("%s %s %s", pick(r, vendorPrefixes), t.name, pick(r, vendorSuffixes))
			if _, ok := seen[candidate]; !ok {
				name = candidate
				break
			}
		}
		if name == "" {
			// индекс уникален, а шаблонные имена не содержат '#'
			name = fmt.Sprintf("%s %s #%d", vendorPrefixes[0], t.name, i+1)
		}
		seen[name] = struct{}{}

		g := pick(r, geoPool)
		created := daysFrom(seedAnchor, -r.between(90, 900))
		updated := daysFrom(created, r.between(0, 80))
		vendors = append(vendors, models.Vendor{
			ID:              firstVendorID + i,
			Name:            name,
			AbbreviatedName: abbreviate(name),
			City:            g.city,
			StateCode:       g.state,
			BusinessPhone:   fmt.Sprintf("(%03d) 555-%04d", r.between(201, 989), r.intn(10000)),
			TradeID:         t.id,
			TradeName:       t.name,
			CreatedAt:       created,
			UpdatedAt:       updated,
		})
	}
	return vendors
}

func abbreviate(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		c := word[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// pickVendors выбирает случайное подмножество частичной перетасовкой Фишера-Йетса
func pickVendors(r *mulberry32, vendors []models.Vendor) map[int]struct{} {
	ids := make([]int, len(vendors))
	for i, v := range vendors {
		ids[i] = v.ID
	}
	n := r.between(minVendorsPerProj, maxVendorsPerProj)
	if n > len(ids) {
		n = len(ids)
	}
	set := make(map[int]struct{}, n)
	for i := 0; i < n; i++ {
		j := i + r.intn(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
		set[ids[i]] = struct{}{}
	}
	return set
}

func generateBidPackages(r *mulberry32, nextID int) ([]models.BidPackage, int) {
	count := r.between(3, 8)
	offset := r.intn(len(bidScopes))
	packages := make([]models.BidPackage, 0, count)
	for j := 0; j < count; j++ {
		scope := bidScopes[(offset+j)%len(bidScopes)]
		created := daysFrom(seedAnchor, -r.between(30, 120))
		packages = append(packages, models.BidPackage{
			ID:        nextID,
			Title:     fmt.Sprintf("BP-%02d %s", j+1, scope),
			Status:    pick(r, bidStatuses),
			DueDate:   daysFrom(seedAnchor, r.between(-20, 60)),
			CreatedAt: created,
			UpdatedAt: daysFrom(created, r.between(0, 25)),
		})
		nextID++
	}
	return packages, nextID
}

// generateDocuments строит дерево сверху вниз: папка всегда создаётся раньше своих детей
func generateDocuments(r *mulberry32, nextID int) ([]models.DocumentEntry, int) {
	var docs []models.DocumentEntry
	add := func(name, kind string, parent *models.DocumentEntry) models.DocumentEntry {
		created := daysFrom(seedAnchor, -r.between(5, 200))
		doc := models.DocumentEntry{
			ID:           nextID,
			Name:         name,
			DocumentType: kind,
			Path:         "/" + name,
			CreatedAt:    created,
			UpdatedAt:    daysFrom(created, r.between(0, 4)),
		}
		if parent != nil {
			pid := parent.ID
			doc.ParentID = &pid
			doc.Path = parent.Path + "/" + name
		}
		nextID++
		docs = append(docs, doc)
		return doc
	}
	addFiles := func(tpl folderTemplate, parent models.DocumentEntry, count int) {
		for k := 0; k < count; k++ {
			name := fmt.Sprintf("%s-%02d %s.%s", tpl.code, k+1, pick(r, tpl.descs), tpl.ext)
			add(name, models.DocumentFile, &parent)
		}
	}

	folders := r.between(3, len(folderPool))
	for f := 0; f < folders; f++ {
		tpl := folderPool[f]
		folder := add(tpl.name, models.DocumentFolder, nil)
		addFiles(tpl, folder, r.between(2, 5))
		if r.float() < 0.4 {
			sub := add("Archive", models.DocumentFolder, &folder)
			addFiles(tpl, sub, r.between(1, 3))
		}
	}
	return docs, nextID
}

// generateSyncLogs возвращает записи от старых к новым; id растут вместе со временем
func generateSyncLogs(r *mulberry32, projectID, nextID int) ([]models.SyncLogEntry, int) {
	count := r.between(4, 12)
	logs := make([]models.SyncLogEntry, count)
	cursor := seedAnchor
	for i := 0; i < count; i++ {
		cursor = cursor.Add(-time.Duration(r.between(45, 2880)) * time.Minute)
		typ := pick(r, models.SyncLogTypes)
		status := pick(r, models.SyncLogStatuses)
		msg := pick(r, syncMessages[typ])
		if status == models.SyncError {
			msg = "Failed: " + msg
		}
		logs[i] = models.SyncLogEntry{
			ProjectID: projectID,
			Type:      typ,
			Status:    status,
			Message:   msg,
			CreatedAt: cursor,
		}
	}
	slices.Reverse(logs)
	for i := range logs {
		logs[i].ID = nextID
		nextID++
	}
	return logs, nextID
}
