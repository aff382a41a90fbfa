package mockstore

import (
	"fmt"

	"preconstruction/models"
)

// viewTable описывает проекцию сущности: какие поля входят в каждый уровень view.
// extended всегда содержит все поля сущности.
type viewTable[T any] struct {
	kind   string
	fields map[string]func(T) any
	views  map[models.View][]string
}

func (vt viewTable[T]) project(view models.View, item T) models.Record {
	names, ok := vt.views[view]
	if !ok {
		names = vt.views[models.ViewNormal]
	}
	rec := make(models.Record, len(names))
	for _, name := range names {
		rec[name] = vt.fields[name](item)
	}
	return rec
}

// validate проверяет minimal ⊆ normal ⊆ extended и полноту extended
func (vt viewTable[T]) validate() error {
	order := []models.View{models.ViewMinimal, models.ViewNormal, models.ViewExtended}
	for _, v := range order {
		for _, name := range vt.views[v] {
			if _, ok := vt.fields[name]; !ok {
				return fmt.Errorf("%s: view %s references unknown field %q", vt.kind, v, name)
			}
		}
	}
	for i := 0; i+1 < len(order); i++ {
		larger := make(map[string]struct{})
		for _, name := range vt.views[order[i+1]] {
			larger[name] = struct{}{}
		}
		for _, name := range vt.views[order[i]] {
			if _, ok := larger[name]; !ok {
				return fmt.Errorf("%s: field %q of view %s is missing from view %s", vt.kind, name, order[i], order[i+1])
			}
		}
	}
	if len(vt.views[models.ViewExtended]) != len(vt.fields) {
		return fmt.Errorf("%s: extended view must cover all %d fields", vt.kind, len(vt.fields))
	}
	return nil
}

var projectView = viewTable[models.Project]{
	kind: "project",
	fields: map[string]func(models.Project) any{
		"id":             func(p models.Project) any { return p.ID },
		"name":           func(p models.Project) any { return p.Name },
		"display_name":   func(p models.Project) any { return p.DisplayName },
		"project_number": func(p models.Project) any { return p.ProjectNumber },
		"address":        func(p models.Project) any { return p.Address },
		"city":           func(p models.Project) any { return p.City },
		"state_code":     func(p models.Project) any { return p.StateCode },
		"zip":            func(p models.Project) any { return p.Zip },
		"country_code":   func(p models.Project) any { return p.CountryCode },
		"company":        func(p models.Project) any { return p.Company },
		"status":         func(p models.Project) any { return p.Status },
		"created_at":     func(p models.Project) any { return p.CreatedAt },
		"updated_at":     func(p models.Project) any { return p.UpdatedAt },
	},
	views: map[models.View][]string{
		models.ViewMinimal:  {"id", "name"},
		models.ViewNormal:   {"id", "name", "display_name", "project_number", "city", "state_code", "status", "updated_at"},
		models.ViewExtended: {"id", "name", "display_name", "project_number", "address", "city", "state_code", "zip", "country_code", "company", "status", "created_at", "updated_at"},
	},
}

var vendorView = viewTable[models.Vendor]{
	kind: "vendor",
	fields: map[string]func(models.Vendor) any{
		"id":               func(v models.Vendor) any { return v.ID },
		"name":             func(v models.Vendor) any { return v.Name },
		"abbreviated_name": func(v models.Vendor) any { return v.AbbreviatedName },
		"city":             func(v models.Vendor) any { return v.City },
		"state_code":       func(v models.Vendor) any { return v.StateCode },
		"business_phone":   func(v models.Vendor) any { return v.BusinessPhone },
		"trade_id":         func(v models.Vendor) any { return v.TradeID },
		"trade_name":       func(v models.Vendor) any { return v.TradeName },
		"created_at":       func(v models.Vendor) any { return v.CreatedAt },
		"updated_at":       func(v models.Vendor) any { return v.UpdatedAt },
	},
	views: map[models.View][]string{
		models.ViewMinimal:  {"id", "name"},
		models.ViewNormal:   {"id", "name", "abbreviated_name", "trade_name", "city", "state_code"},
		models.ViewExtended: {"id", "name", "abbreviated_name", "city", "state_code", "business_phone", "trade_id", "trade_name", "created_at", "updated_at"},
	},
}

var bidPackageView = viewTable[models.BidPackage]{
	kind: "bid_package",
	fields: map[string]func(models.BidPackage) any{
		"id":         func(b models.BidPackage) any { return b.ID },
		"title":      func(b models.BidPackage) any { return b.Title },
		"status":     func(b models.BidPackage) any { return b.Status },
		"due_date":   func(b models.BidPackage) any { return b.DueDate },
		"created_at": func(b models.BidPackage) any { return b.CreatedAt },
		"updated_at": func(b models.BidPackage) any { return b.UpdatedAt },
	},
	views: map[models.View][]string{
		models.ViewMinimal:  {"id", "title"},
		models.ViewNormal:   {"id", "title", "status", "due_date"},
		models.ViewExtended: {"id", "title", "status", "due_date", "created_at", "updated_at"},
	},
}

var documentView = viewTable[models.DocumentEntry]{
	kind: "document",
	fields: map[string]func(models.DocumentEntry) any{
		"id":            func(d models.DocumentEntry) any { return d.ID },
		"name":          func(d models.DocumentEntry) any { return d.Name },
		"document_type": func(d models.DocumentEntry) any { return d.DocumentType },
		"parent_id":     func(d models.DocumentEntry) any { return d.ParentID },
		"path":          func(d models.DocumentEntry) any { return d.Path },
		"created_at":    func(d models.DocumentEntry) any { return d.CreatedAt },
		"updated_at":    func(d models.DocumentEntry) any { return d.UpdatedAt },
	},
	views: map[models.View][]string{
		models.ViewMinimal:  {"id", "name", "document_type"},
		models.ViewNormal:   {"id", "name", "document_type", "parent_id", "path", "updated_at"},
		models.ViewExtended: {"id", "name", "document_type", "parent_id", "path", "created_at", "updated_at"},
	},
}

func validateViews() error {
	for _, check := range []func() error{
		projectView.validate,
		vendorView.validate,
		bidPackageView.validate,
		documentView.validate,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
