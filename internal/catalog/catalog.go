package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Renal37/smm-storefront/internal/api"
	"github.com/Renal37/smm-storefront/internal/logger"
	"github.com/Renal37/smm-storefront/internal/models"
	"go.uber.org/zap"
)

// AllCategories is the category value the UI sends for an unfiltered catalog.
const AllCategories = "Tous"

var ErrServiceNotFound = errors.New("service not found")

type servicesFetcher interface {
	FetchServices(ctx context.Context) ([]models.RawService, error)
}

// Catalog serves normalized services, caching the backend list for ttl.
type Catalog struct {
	fetcher  servicesFetcher
	fallback []models.Service
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	cached    []models.Service
	fetchedAt time.Time
}

func New(fetcher servicesFetcher, ttl time.Duration) *Catalog {
	return &Catalog{
		fetcher:  fetcher,
		fallback: Builtin(),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (c *Catalog) List(ctx context.Context, filter models.CatalogFilter) ([]models.Service, error) {
	services, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(filter.Category)
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	result := make([]models.Service, 0, len(services))
	for _, s := range services {
		if category != "" && category != AllCategories && s.Category != category && s.Platform != category {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(s.Title), query) &&
			!strings.Contains(strings.ToLower(s.Description), query) &&
			!strings.Contains(strings.ToLower(s.Category), query) {
			continue
		}

		result = append(result, s)
	}

	return result, nil
}

func (c *Catalog) Get(ctx context.Context, id int) (models.Service, error) {
	services, err := c.load(ctx)
	if err != nil {
		return models.Service{}, err
	}

	for _, s := range services {
		if s.ID == id {
			return s, nil
		}
	}

	return models.Service{}, ErrServiceNotFound
}

// Invalidate drops the cached backend list; the next read fetches it again.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cached = nil
	c.fetchedAt = time.Time{}
}

func (c *Catalog) load(ctx context.Context) ([]models.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.cached, nil
	}

	raw, err := c.fetcher.FetchServices(ctx)
	if err != nil {
		if errors.Is(err, api.ErrMaintenance) {
			return nil, err
		}

		logger.Log.Warn("failed to fetch services, serving built-in catalog", zap.Error(err))
		return c.fallback, nil
	}

	services := make([]models.Service, 0, len(raw))
	for _, r := range raw {
		s, err := Ingest(r)
		if err != nil {
			logger.Log.Warn("skipping service record", zap.Int("serviceID", r.ID), zap.Error(err))
			continue
		}
		services = append(services, s)
	}

	if len(services) == 0 {
		return c.fallback, nil
	}

	c.cached = services
	c.fetchedAt = c.now()

	return services, nil
}
