package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/pricing"
)

var ErrInvalidService = errors.New("invalid service record")

// Ingest turns a backend record into a catalog service. Numeric and legacy string prices
// both end up as a structured models.Price; quantity bound aliases are resolved here.
func Ingest(raw models.RawService) (models.Service, error) {
	price, err := ingestPrice(raw.Price, raw.Unit)
	if err != nil {
		return models.Service{}, fmt.Errorf("%w: service %d: %w", ErrInvalidService, raw.ID, err)
	}

	if price.Amount < 0 {
		return models.Service{}, fmt.Errorf("%w: service %d: negative price", ErrInvalidService, raw.ID)
	}

	lo := firstInt(pricing.DefaultMin, raw.MinQuantity, raw.Min)
	hi := firstInt(pricing.DefaultMax, raw.MaxQuantity, raw.Max)
	if lo > hi {
		lo, hi = hi, lo
	}

	bg := raw.BgColor
	if bg == "" {
		bg = raw.Bg
	}

	asset := LookupAsset(raw.IconName)
	if raw.Color != "" {
		asset.Color = raw.Color
	}
	if bg != "" {
		asset.Bg = bg
	}

	return models.Service{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Price:       price,
		Min:         lo,
		Max:         hi,
		Category:    raw.Category,
		Platform:    raw.Platform,
		Features:    raw.Features,
		Icon:        asset.Icon,
		Color:       asset.Color,
		Bg:          asset.Bg,
	}, nil
}

func ingestPrice(raw json.RawMessage, unit string) (models.Price, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.Price{}, errors.New("price is missing")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return models.Price{}, fmt.Errorf("failed to decode price string: %w", err)
		}
		if strings.TrimSpace(s) == "" {
			return models.Price{}, errors.New("price is empty")
		}
		return pricing.ParsePrice(s), nil
	}

	var amount float64
	if err := json.Unmarshal(raw, &amount); err != nil {
		return models.Price{}, fmt.Errorf("failed to decode price number: %w", err)
	}
	return pricing.NewPrice(amount, unit), nil
}

func firstInt(def int, values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return def
}
