package repository

import (
	"errors"

	"car-agent/domain"
)

// ErrCarNotFound indica que el stock_id consultado no existe en el
// catálogo.
var ErrCarNotFound = errors.New("auto no encontrado")

// CatalogRepository responde consultas sobre el catálogo de autos.
type CatalogRepository interface {
	Filter(prefs domain.Preferences) []domain.Car
	GetByID(stockID int) (domain.Car, error)
	Len() int
}
