package catalog

import (
	"encoding/json"
	"testing"

	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestIngestPriceForms(t *testing.T) {
	eur := pricing.LookupCurrency("eur")

	legacy, err := Ingest(models.RawService{ID: 1, Price: json.RawMessage(`"2.49 MAD / 1000"`)})
	require.NoError(t, err)

	numeric, err := Ingest(models.RawService{ID: 2, Price: json.RawMessage(`2.49`), Unit: "1000"})
	require.NoError(t, err)

	assert.Equal(t, legacy.Price, numeric.Price)
	assert.InDelta(t, 0.00249, pricing.NormalizeRate(legacy.Price, eur).Value, 1e-12)
	assert.InDelta(t, 0.00249, pricing.NormalizeRate(numeric.Price, eur).Value, 1e-12)
}

func TestIngestBounds(t *testing.T) {
	tests := []struct {
		name   string
		raw    models.RawService
		lo, hi int
	}{
		{name: "defaults", raw: models.RawService{}, lo: 1, hi: 1000000},
		{name: "min and max", raw: models.RawService{Min: intPtr(100), Max: intPtr(100000)}, lo: 100, hi: 100000},
		{name: "aliases win", raw: models.RawService{Min: intPtr(100), MinQuantity: intPtr(50), MaxQuantity: intPtr(500)}, lo: 50, hi: 500},
		{name: "inverted bounds", raw: models.RawService{Min: intPtr(500), Max: intPtr(10)}, lo: 10, hi: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.raw.Price = json.RawMessage(`1`)
			s, err := Ingest(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.lo, s.Min)
			assert.Equal(t, tt.hi, s.Max)
		})
	}
}

func TestIngestAssets(t *testing.T) {
	s, err := Ingest(models.RawService{Price: json.RawMessage(`1`), IconName: "Unknown", BgColor: "bg-x", Bg: "bg-y"})
	require.NoError(t, err)
	assert.Equal(t, "Globe", s.Icon)
	assert.Equal(t, "bg-x", s.Bg)
	assert.Equal(t, "text-primary-400", s.Color)

	s, err = Ingest(models.RawService{Price: json.RawMessage(`1`), IconName: "DiscordIcon"})
	require.NoError(t, err)
	assert.Equal(t, "DiscordIcon", s.Icon)
	assert.Equal(t, "bg-indigo-500/10", s.Bg)
}

func TestIngestRejects(t *testing.T) {
	for _, price := range []string{``, `null`, `""`, `{}`, `-3`} {
		_, err := Ingest(models.RawService{ID: 9, Price: json.RawMessage(price)})
		assert.ErrorIs(t, err, ErrInvalidService, price)
	}
}

func TestBuiltinIsNormalized(t *testing.T) {
	for _, s := range Builtin() {
		assert.LessOrEqual(t, s.Min, s.Max, s.Title)
		assert.Positive(t, s.Price.Amount, s.Title)
		assert.NotEmpty(t, s.Price.Unit, s.Title)
	}
}
