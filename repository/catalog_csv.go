package repository

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"car-agent/domain"
	"car-agent/metrics"
)

// maxRecommendations acota cada resultado de filtrado a los N autos
// más baratos.
const maxRecommendations = 5

var requiredColumns = []string{"make", "model", "year", "price", "km", "version"}

// CSVCatalog carga el catálogo desde un archivo CSV y lo mantiene en
// memoria. Después de la carga es de solo lectura, por lo que las
// consultas concurrentes no requieren sincronización.
//
// Cualquier problema al cargar (archivo inexistente, vacío, columnas
// faltantes) deja un catálogo vacío en lugar de propagar el error: los
// consumidores solo observan resultados vacíos.
type CSVCatalog struct {
	path string
	cars []domain.Car
	log  *zap.SugaredLogger
}

func NewCSVCatalog(path string, log *zap.SugaredLogger) *CSVCatalog {
	c := &CSVCatalog{path: path, log: log}
	c.load()
	return c
}

func (c *CSVCatalog) load() {
	c.log.Infow("cargando catálogo de autos", "path", c.path)

	f, err := os.Open(c.path)
	if err != nil {
		c.log.Errorw("no se pudo abrir el catálogo", "path", c.path, "error", err)
		c.cars = nil
		c.log.Warnw("catálogo inicializado vacío por error de carga")
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		c.log.Errorw("error leyendo el catálogo", "error", err)
		c.cars = nil
		c.log.Warnw("catálogo inicializado vacío por error de carga")
		return
	}
	if len(records) < 2 {
		c.log.Errorw("el catálogo está vacío", "path", c.path)
		c.cars = nil
		c.log.Warnw("catálogo inicializado vacío por error de carga")
		return
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		c.log.Errorw("faltan columnas requeridas en el catálogo", "columns", missing)
		c.cars = nil
		c.log.Warnw("catálogo inicializado vacío por error de carga")
		return
	}

	cars := make([]domain.Car, 0, len(records)-1)
	for i, row := range records[1:] {
		car, ok := c.parseRow(row, cols, i+2)
		if ok {
			cars = append(cars, car)
		}
	}
	c.cars = cars
	c.log.Infow("catálogo cargado", "cars", len(cars))
}

func (c *CSVCatalog) parseRow(row []string, cols map[string]int, line int) (domain.Car, bool) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	stockID, err := strconv.Atoi(field("stock_id"))
	if err != nil {
		c.log.Warnw("stock_id inválido, fila descartada", "line", line, "value", field("stock_id"))
		return domain.Car{}, false
	}

	// Valores numéricos ilegibles se fuerzan a cero con una
	// advertencia; la fila se conserva.
	num := func(name string) float64 {
		raw := field(name)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.log.Warnw("valor numérico inválido en el catálogo",
				"line", line, "column", name, "value", raw)
			return 0
		}
		return v
	}

	return domain.Car{
		StockID:   stockID,
		KM:        num("km"),
		Price:     num("price"),
		Make:      field("make"),
		Model:     field("model"),
		Year:      int(num("year")),
		Version:   field("version"),
		Bluetooth: field("bluetooth"),
		Largo:     num("largo"),
		Ancho:     num("ancho"),
		Altura:    num("altura"),
		CarPlay:   field("car_play"),
	}, true
}

// Filter aplica los criterios opcionales combinados con AND y devuelve
// a lo sumo maxRecommendations autos ordenados por precio ascendente.
func (c *CSVCatalog) Filter(prefs domain.Preferences) []domain.Car {
	start := time.Now()
	defer func() {
		metrics.CatalogLatency.Observe(float64(time.Since(start).Microseconds()) / 1000)
	}()

	matches := make([]domain.Car, 0, len(c.cars))
	if len(c.cars) == 0 {
		c.log.Warnw("no hay recomendaciones posibles: el catálogo está vacío")
		return matches
	}

	for _, car := range c.cars {
		if prefs.Budget != nil && car.Price > *prefs.Budget {
			continue
		}
		if prefs.Brand != nil && !containsFold(car.Make, *prefs.Brand) {
			continue
		}
		if prefs.Model != nil && !containsFold(car.Model, *prefs.Model) {
			continue
		}
		if prefs.YearMin != nil && car.Year < *prefs.YearMin {
			continue
		}
		if prefs.YearMax != nil && car.Year > *prefs.YearMax {
			continue
		}
		matches = append(matches, car)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Price < matches[j].Price
	})
	if len(matches) > maxRecommendations {
		matches = matches[:maxRecommendations]
	}
	c.log.Infow("recomendaciones encontradas", "count", len(matches))
	return matches
}

// GetByID busca un auto por stock_id exacto.
func (c *CSVCatalog) GetByID(stockID int) (domain.Car, error) {
	for _, car := range c.cars {
		if car.StockID == stockID {
			return car, nil
		}
	}
	c.log.Warnw("auto no encontrado", "stock_id", stockID)
	return domain.Car{}, ErrCarNotFound
}

func (c *CSVCatalog) Len() int {
	return len(c.cars)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
