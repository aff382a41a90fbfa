package procore_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preconstruction/internal/procore"
)

func TestListPageNormalizesHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1.0/projects", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "4264807", r.Header.Get("Procore-Company-Id"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Total", "23")
		w.Header().Set("Per-Page", "10")
		w.Write([]byte(`[{"id":1},{"id":2}]`))
	}))
	defer srv.Close()

	c := procore.NewClient(srv.URL+"/", "4264807", 100)
	page, err := c.ListPage(context.Background(), "tok", "/rest/v1.0/projects", url.Values{"page": {"2"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, 2, page.Meta.Page)
	require.Equal(t, 10, page.Meta.PerPage)
	require.Equal(t, 23, page.Meta.Total)
	require.Equal(t, 3, page.Meta.TotalPages)
}

func TestListPageWithoutTotalHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := procore.NewClient(srv.URL, "", 100)
	page, err := c.ListPage(context.Background(), "tok", "/rest/v1.0/projects/1/vendors", nil)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.NotNil(t, page.Items)
	require.Equal(t, 0, page.Meta.Total)
	require.Equal(t, 1, page.Meta.TotalPages)
}

func TestRequestRequiresToken(t *testing.T) {
	c := procore.NewClient("http://127.0.0.1:1", "", 100)
	_, err := c.Request(context.Background(), "", http.MethodGet, "/x", nil, nil, nil)
	require.ErrorIs(t, err, procore.ErrMissingToken)
}

func TestRequestUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errors":"nope"}`))
	}))
	defer srv.Close()

	c := procore.NewClient(srv.URL, "", 100)
	_, err := c.Request(context.Background(), "tok", http.MethodGet, "/x", nil, nil, nil)

	var upstream *procore.UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, http.StatusForbidden, upstream.StatusCode)
	require.Contains(t, upstream.Body, "nope")
}

func TestAddBiddersOneCallPerVendor(t *testing.T) {
	var mu sync.Mutex
	var vendors []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1.0/projects/7/bid_packages/11/bids", r.URL.Path)
		var body struct {
			Bid struct {
				VendorID int    `json:"vendor_id"`
				Comments string `json:"bidder_comments"`
			} `json:"bid"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body.Bid.Comments)
		mu.Lock()
		vendors = append(vendors, body.Bid.VendorID)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := procore.NewClient(srv.URL, "", 1000)
	err := c.AddBidders(context.Background(), "tok", 7, 11, []int{3, 1, 2}, "hello")
	require.NoError(t, err)

	sort.Ints(vendors)
	require.Equal(t, []int{1, 2, 3}, vendors)
}

func TestAddBiddersPropagatesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := procore.NewClient(srv.URL, "", 1000)
	err := c.AddBidders(context.Background(), "tok", 7, 11, []int{1}, "")

	var upstream *procore.UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, http.StatusUnprocessableEntity, upstream.StatusCode)
}

func TestCreateUploadPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"uuid":"abc","url":"https://s3.example/bucket","fields":{"key":"k"},"path":"` + r.URL.Path + `"}`))
	}))
	defer srv.Close()

	projectID := 5
	c := procore.NewClient(srv.URL, "99", 1000)
	up, err := c.CreateUpload(context.Background(), "tok", &projectID, "a.pdf", "application/pdf")
	require.NoError(t, err)
	require.Equal(t, "abc", up.UUID)
	require.Equal(t, "k", up.Fields["key"])

	noCompany := procore.NewClient(srv.URL, "", 1000)
	_, err = noCompany.CreateUpload(context.Background(), "tok", nil, "a.pdf", "")
	require.ErrorIs(t, err, procore.ErrMissingCompany)
}
