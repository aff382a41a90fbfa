package mockstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"preconstruction/models"
)

func TestMulberry32Deterministic(t *testing.T) {
	a, b := newRand(42), newRand(42)
	for i := 0; i < 100; i++ {
		x, y := a.float(), b.float()
		require.Equal(t, x, y)
		require.GreaterOrEqual(t, x, 0.0)
		require.Less(t, x, 1.0)
	}
	require.NotEqual(t, newRand(1).float(), newRand(2).float())
}

func TestBetweenInclusiveRange(t *testing.T) {
	r := newRand(7)
	for i := 0; i < 500; i++ {
		v := r.between(3, 8)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 8)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	first, second := generate(), generate()

	p1, err := json.Marshal(first.projects)
	require.NoError(t, err)
	p2, err := json.Marshal(second.projects)
	require.NoError(t, err)
	require.Equal(t, string(p1), string(p2))

	v1, err := json.Marshal(first.vendors)
	require.NoError(t, err)
	v2, err := json.Marshal(second.vendors)
	require.NoError(t, err)
	require.Equal(t, string(v1), string(v2))

	require.Equal(t, first.vendorIDsByProject, second.vendorIDsByProject)
	require.Equal(t, first.bidPackagesByProj, second.bidPackagesByProj)
	require.Equal(t, first.syncLogsByProject, second.syncLogsByProject)
}

func TestGenerateProjects(t *testing.T) {
	ds := generate()
	require.Len(t, ds.projects, 12)
	for i, p := range ds.projects {
		require.Equal(t, 124512+i, p.ID)
		require.Contains(t, []string{"Active", "Preconstruction"}, p.Status)
		require.Equal(t, ds.company, p.Company)
		require.False(t, p.UpdatedAt.Before(p.CreatedAt))
	}
}

func TestGenerateVendorsUnique(t *testing.T) {
	ds := generate()
	require.Len(t, ds.vendors, vendorCount)
	names := make(map[string]struct{})
	ids := make(map[int]struct{})
	for _, v := range ds.vendors {
		_, dup := names[v.Name]
		require.False(t, dup, "duplicate vendor name %q", v.Name)
		names[v.Name] = struct{}{}
		ids[v.ID] = struct{}{}
		require.NotEmpty(t, v.AbbreviatedName)
		require.NotEmpty(t, v.TradeName)
	}
	require.Len(t, ids, vendorCount)
}

func TestVendorMembershipReferencesKnownVendors(t *testing.T) {
	ds := generate()
	known := make(map[int]struct{})
	for _, v := range ds.vendors {
		known[v.ID] = struct{}{}
	}
	for _, p := range ds.projects {
		members := ds.vendorIDsByProject[p.ID]
		require.GreaterOrEqual(t, len(members), minVendorsPerProj)
		require.LessOrEqual(t, len(members), maxVendorsPerProj)
		for id := range members {
			_, ok := known[id]
			require.True(t, ok, "project %d references unknown vendor %d", p.ID, id)
		}
	}
}

func TestBidPackagesPerProject(t *testing.T) {
	ds := generate()
	seen := make(map[int]struct{})
	for _, p := range ds.projects {
		packages := ds.bidPackagesByProj[p.ID]
		require.GreaterOrEqual(t, len(packages), 3)
		require.LessOrEqual(t, len(packages), 8)
		for _, b := range packages {
			_, dup := seen[b.ID]
			require.False(t, dup)
			seen[b.ID] = struct{}{}
			require.Contains(t, bidStatuses, b.Status)
		}
	}
}

func TestDocumentTreeIsValid(t *testing.T) {
	ds := generate()
	for _, p := range ds.projects {
		folders := make(map[int]models.DocumentEntry)
		for _, d := range ds.documentsByProject[p.ID] {
			if d.ParentID != nil {
				parent, ok := folders[*d.ParentID]
				require.True(t, ok, "document %d has parent %d that is not an earlier folder", d.ID, *d.ParentID)
				require.Equal(t, parent.Path+"/"+d.Name, d.Path)
			} else {
				require.Equal(t, "/"+d.Name, d.Path)
			}
			if d.DocumentType == models.DocumentFolder {
				folders[d.ID] = d
			}
		}
		require.NotEmpty(t, folders)
	}
}

func TestSyncLogsChronologicalWithGlobalIDs(t *testing.T) {
	ds := generate()
	ids := make(map[int]struct{})
	maxID := 0
	for _, p := range ds.projects {
		logs := ds.syncLogsByProject[p.ID]
		require.GreaterOrEqual(t, len(logs), 4)
		for i, e := range logs {
			require.Equal(t, p.ID, e.ProjectID)
			_, dup := ids[e.ID]
			require.False(t, dup)
			ids[e.ID] = struct{}{}
			maxID = max(maxID, e.ID)
			if i > 0 {
				require.Greater(t, e.ID, logs[i-1].ID)
				require.True(t, e.CreatedAt.After(logs[i-1].CreatedAt))
			}
		}
	}
	require.Equal(t, maxID+1, ds.nextSyncLogID)
}
