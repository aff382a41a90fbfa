package mockstore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"preconstruction/models"
)

func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
		want   bool
	}{
		{"empty query", "", []string{"anything"}, true},
		{"whitespace query", "  \t ", []string{"anything"}, true},
		{"single token case-insensitive", "CONCRETE", []string{"Apex Concrete Builders"}, true},
		{"tokens across fields", "apex denver", []string{"Apex Concrete Builders", "Denver"}, true},
		{"all tokens required", "apex phoenix", []string{"Apex Concrete Builders", "Denver"}, false},
		{"substring match", "crete", []string{"Concrete"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, matchesSearch(tt.query, tt.fields...))
		})
	}
}

func TestPaginationTotality(t *testing.T) {
	s := newTestStore()
	pages := []int{math.MinInt32, -5, 0, 1, 2, 3, 7, 1000, math.MaxInt32}
	perPages := []int{-1, 0, 1, 3, 10, 25, 100, 5000}

	for _, perPage := range perPages {
		for _, page := range pages {
			got := s.ListVendors(124512, ListOptions{Page: page, PerPage: perPage}, VendorFilters{})
			meta := got.Meta
			require.GreaterOrEqual(t, meta.PerPage, 1)
			require.LessOrEqual(t, len(got.Items), meta.PerPage)
			wantPages := int(math.Max(1, math.Ceil(float64(meta.Total)/float64(meta.PerPage))))
			require.Equal(t, wantPages, meta.TotalPages)
			require.GreaterOrEqual(t, meta.Page, 1)
			require.LessOrEqual(t, meta.Page, meta.TotalPages)
			if meta.Total > 0 {
				require.NotEmpty(t, got.Items)
			}
		}
	}
}

func TestPaginationDefaults(t *testing.T) {
	s := newTestStore()

	got := s.ListProjects(ListOptions{Page: -3, PerPage: 0}, ProjectFilters{})
	require.Equal(t, models.Meta{Page: 1, PerPage: DefaultPerPage, Total: 12, TotalPages: 2}, got.Meta)

	last := s.ListProjects(ListOptions{Page: 99, PerPage: 5}, ProjectFilters{})
	require.Equal(t, 3, last.Meta.Page)
	require.Len(t, last.Items, 2)
}

func TestPerPageCapped(t *testing.T) {
	s := newTestStore()

	got := s.ListVendors(124512, ListOptions{PerPage: 500}, VendorFilters{})
	require.Equal(t, MaxPerPage, got.Meta.PerPage)
	require.Equal(t, 1, got.Meta.TotalPages)
	require.Len(t, got.Items, got.Meta.Total)

	exact := s.ListVendors(124512, ListOptions{PerPage: MaxPerPage}, VendorFilters{})
	require.Equal(t, MaxPerPage, exact.Meta.PerPage)
}

func TestSearchIdempotent(t *testing.T) {
	s := newTestStore()
	opts := ListOptions{PerPage: 100}

	once := s.ListVendors(124512, opts, VendorFilters{Search: "concrete"})
	twice := s.ListVendors(124512, opts, VendorFilters{Search: "concrete concrete"})
	require.Equal(t, once, twice)

	all := s.ListVendors(124512, opts, VendorFilters{})
	blank := s.ListVendors(124512, opts, VendorFilters{Search: "   "})
	require.Equal(t, all, blank)
}

func TestUnknownSortMatchesDefault(t *testing.T) {
	s := newTestStore()
	opts := ListOptions{PerPage: 100}

	require.Equal(t,
		s.ListProjects(opts, ProjectFilters{}),
		s.ListProjects(ListOptions{PerPage: 100, Sort: "budget"}, ProjectFilters{}))
	require.Equal(t,
		s.ListVendors(124512, opts, VendorFilters{}),
		s.ListVendors(124512, ListOptions{PerPage: 100, Sort: "-zzz"}, VendorFilters{}))
	require.Equal(t,
		s.ListBidPackages(124512, opts, BidPackageFilters{}),
		s.ListBidPackages(124512, ListOptions{PerPage: 100, Sort: "price"}, BidPackageFilters{}))
	require.Equal(t,
		s.ListDocuments(124512, opts, DocumentFilters{}),
		s.ListDocuments(124512, ListOptions{PerPage: 100, Sort: "size"}, DocumentFilters{}))
}

func TestSortDescending(t *testing.T) {
	s := newTestStore()

	asc := s.ListProjects(ListOptions{PerPage: 100, Sort: "name", View: models.ViewMinimal}, ProjectFilters{})
	desc := s.ListProjects(ListOptions{PerPage: 100, Sort: "-name", View: models.ViewMinimal}, ProjectFilters{})
	require.Len(t, desc.Items, len(asc.Items))
	for i := range asc.Items {
		require.Equal(t, asc.Items[i]["id"], desc.Items[len(desc.Items)-1-i]["id"])
	}
}

func TestListDoesNotMutate(t *testing.T) {
	s := newTestStore()
	before := s.ListBidPackages(124512, ListOptions{PerPage: 100, View: models.ViewExtended}, BidPackageFilters{})
	_ = s.ListBidPackages(124512, ListOptions{PerPage: 100, Sort: "title"}, BidPackageFilters{})
	after := s.ListBidPackages(124512, ListOptions{PerPage: 100, View: models.ViewExtended}, BidPackageFilters{})
	require.Equal(t, before, after)
}
