package mockstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"preconstruction/models"
)

func TestViewTablesAreNested(t *testing.T) {
	require.NoError(t, validateViews())
}

func TestValidateRejectsBrokenNesting(t *testing.T) {
	broken := viewTable[models.BidPackage]{
		kind:   "bid_package",
		fields: bidPackageView.fields,
		views: map[models.View][]string{
			models.ViewMinimal:  {"id", "title", "due_date"},
			models.ViewNormal:   {"id", "title", "status"},
			models.ViewExtended: {"id", "title", "status", "due_date", "created_at", "updated_at"},
		},
	}
	require.ErrorContains(t, broken.validate(), "due_date")

	partial := viewTable[models.BidPackage]{
		kind:   "bid_package",
		fields: bidPackageView.fields,
		views: map[models.View][]string{
			models.ViewMinimal:  {"id"},
			models.ViewNormal:   {"id"},
			models.ViewExtended: {"id", "title"},
		},
	}
	require.Error(t, partial.validate())

	unknown := viewTable[models.BidPackage]{
		kind:   "bid_package",
		fields: bidPackageView.fields,
		views: map[models.View][]string{
			models.ViewMinimal: {"bogus"},
		},
	}
	require.ErrorContains(t, unknown.validate(), "bogus")
}

func requireMonotonic[T any](t *testing.T, vt viewTable[T], items []T) {
	t.Helper()
	for _, it := range items {
		minimal := vt.project(models.ViewMinimal, it)
		normal := vt.project(models.ViewNormal, it)
		extended := vt.project(models.ViewExtended, it)
		for k, v := range minimal {
			require.Equal(t, v, normal[k], "%s.%s", vt.kind, k)
			require.Equal(t, v, extended[k], "%s.%s", vt.kind, k)
		}
		for k, v := range normal {
			require.Equal(t, v, extended[k], "%s.%s", vt.kind, k)
		}
		require.Len(t, extended, len(vt.fields))
	}
}

func TestViewMonotonicity(t *testing.T) {
	ds := generate()
	requireMonotonic(t, projectView, ds.projects)
	requireMonotonic(t, vendorView, ds.vendors)
	for _, p := range ds.projects {
		requireMonotonic(t, bidPackageView, ds.bidPackagesByProj[p.ID])
		requireMonotonic(t, documentView, ds.documentsByProject[p.ID])
	}
}

func TestUnknownViewFallsBackToNormal(t *testing.T) {
	require.Equal(t, models.ViewNormal, models.ParseView("huge"))
	require.Equal(t, models.ViewNormal, models.ParseView(""))
	require.Equal(t, models.ViewExtended, models.ParseView("extended"))

	v := generate().vendors[0]
	require.Equal(t, vendorView.project(models.ViewNormal, v), vendorView.project(models.View("huge"), v))
}
