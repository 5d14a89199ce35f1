package models

import "encoding/json"

// Price хранит нормализованную цену услуги: сумму и единицу, к которой она относится.
// Unit всегда заполнен после загрузки каталога ("1000", "mois", "pack", ...).
type Price struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Service - услуга каталога.
type Service struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       Price    `json:"price"`
	Min         int      `json:"min"`
	Max         int      `json:"max"`
	Category    string   `json:"category"`
	Platform    string   `json:"platform"`
	Features    []string `json:"features"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	Bg          string   `json:"bg"`
}

// FixedQuantity сообщает, что количество у услуги не регулируется (подписки, паки).
func (s Service) FixedQuantity() bool {
	return s.Min == s.Max
}

// RawService - запись услуги в том виде, в котором её отдаёт backend.
// Price может быть числом (вместе с Unit) или строкой вида "2.49 MAD / 1000".
type RawService struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Unit        string          `json:"unit,omitempty"`
	Min         *int            `json:"min,omitempty"`
	Max         *int            `json:"max,omitempty"`
	MinQuantity *int            `json:"min_quantity,omitempty"`
	MaxQuantity *int            `json:"max_quantity,omitempty"`
	Category    string          `json:"category"`
	Platform    string          `json:"platform"`
	Features    []string        `json:"features"`
	IconName    string          `json:"icon_name,omitempty"`
	Color       string          `json:"color,omitempty"`
	Bg          string          `json:"bg,omitempty"`
	BgColor     string          `json:"bg_color,omitempty"`
}

// CatalogFilter ограничивает выдачу каталога.
type CatalogFilter struct {
	Category string
	Query    string
}
