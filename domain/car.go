package domain

import "strings"

// Car is one row of the sales catalog. The catalog is loaded once at
// startup and treated as read-only afterwards.
type Car struct {
	StockID   int     `json:"stock_id"`
	KM        float64 `json:"km"`
	Price     float64 `json:"price"`
	Make      string  `json:"make"`
	Model     string  `json:"model"`
	Year      int     `json:"year"`
	Version   string  `json:"version"`
	Bluetooth string  `json:"bluetooth,omitempty"`
	Largo     float64 `json:"largo,omitempty"`
	Ancho     float64 `json:"ancho,omitempty"`
	Altura    float64 `json:"altura,omitempty"`
	CarPlay   string  `json:"car_play,omitempty"`
}

// El catálogo marca las características con "Sí" / "No".
func hasFeature(value string) bool {
	v := strings.TrimSpace(value)
	return strings.EqualFold(v, "sí") || strings.EqualFold(v, "si")
}

func (c Car) HasBluetooth() bool {
	return hasFeature(c.Bluetooth)
}

func (c Car) HasCarPlay() bool {
	return hasFeature(c.CarPlay)
}
