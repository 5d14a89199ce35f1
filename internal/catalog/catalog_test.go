package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Renal37/smm-storefront/internal/api"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	services []models.RawService
	err      error
	calls    int
}

func (s *stubFetcher) FetchServices(ctx context.Context) ([]models.RawService, error) {
	s.calls++
	return s.services, s.err
}

func backendServices() []models.RawService {
	return []models.RawService{
		{ID: 1, Title: "Instagram Followers", Description: "Abonnés réels", Price: json.RawMessage(`"2.49 MAD / 1000"`), Category: "Instagram", Platform: "Instagram"},
		{ID: 2, Title: "TikTok Views", Description: "Vues FYP", Price: json.RawMessage(`0.10`), Unit: "1000", Category: "TikTok", Platform: "TikTok"},
		{ID: 3, Title: "Backlinks", Description: "Liens dofollow", Price: json.RawMessage(`"49.00 MAD / pack"`), Category: "SEO", Platform: "Web"},
		{ID: 4, Title: "Broken", Price: json.RawMessage(`null`)},
	}
}

func TestListFilters(t *testing.T) {
	c := New(&stubFetcher{services: backendServices()}, time.Minute)

	tests := []struct {
		name   string
		filter models.CatalogFilter
		ids    []int
	}{
		{name: "everything", filter: models.CatalogFilter{}, ids: []int{1, 2, 3}},
		{name: "all category", filter: models.CatalogFilter{Category: AllCategories}, ids: []int{1, 2, 3}},
		{name: "by category", filter: models.CatalogFilter{Category: "TikTok"}, ids: []int{2}},
		{name: "by platform", filter: models.CatalogFilter{Category: "Web"}, ids: []int{3}},
		{name: "search title", filter: models.CatalogFilter{Query: "INSTAGRAM"}, ids: []int{1}},
		{name: "search description", filter: models.CatalogFilter{Query: "dofollow"}, ids: []int{3}},
		{name: "search category", filter: models.CatalogFilter{Query: "seo"}, ids: []int{3}},
		{name: "nothing", filter: models.CatalogFilter{Category: "Twitch"}, ids: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services, err := c.List(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]int, 0, len(services))
			for _, s := range services {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestListCaches(t *testing.T) {
	fetcher := &stubFetcher{services: backendServices()}
	c := New(fetcher, time.Minute)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, _ = c.List(context.Background(), models.CatalogFilter{})
	_, _ = c.List(context.Background(), models.CatalogFilter{})
	assert.Equal(t, 1, fetcher.calls)

	now = now.Add(2 * time.Minute)
	_, _ = c.List(context.Background(), models.CatalogFilter{})
	assert.Equal(t, 2, fetcher.calls)

	c.Invalidate()
	_, _ = c.List(context.Background(), models.CatalogFilter{})
	assert.Equal(t, 3, fetcher.calls)
}

func TestListFallsBackToBuiltin(t *testing.T) {
	for name, fetcher := range map[string]*stubFetcher{
		"backend error": {err: errors.New("connection refused")},
		"empty backend": {services: []models.RawService{}},
	} {
		t.Run(name, func(t *testing.T) {
			services, err := New(fetcher, time.Minute).List(context.Background(), models.CatalogFilter{})
			require.NoError(t, err)
			assert.Len(t, services, len(Builtin()))
		})
	}
}

func TestListMaintenance(t *testing.T) {
	c := New(&stubFetcher{err: &api.StatusError{Code: 503}}, time.Minute)

	_, err := c.List(context.Background(), models.CatalogFilter{})
	assert.ErrorIs(t, err, api.ErrMaintenance)
}

func TestGet(t *testing.T) {
	c := New(&stubFetcher{services: backendServices()}, time.Minute)

	s, err := c.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Backlinks", s.Title)
	assert.False(t, s.FixedQuantity())

	_, err = c.Get(context.Background(), 4)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
