package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"car-agent/domain"
)

const testCatalog = `stock_id,km,price,make,model,year,version,bluetooth,car_play
1,45000,180000,Toyota,Corolla,2020,LE,Sí,Sí
2,78000,150000,Nissan,Versa,2018,Advance,Sí,No
3,32000,265000,Mazda,3,2021,i Grand Touring,Sí,Sí
4,55000,210000,Volkswagen,Jetta,2019,Comfortline,Sí,No
5,98000,125000,Chevrolet,Aveo,2017,LT,No,No
6,25000,320000,Honda,CR-V,2021,Turbo Plus,Sí,Sí
7,61000,195000,Kia,Forte,2019,EX,Sí,Sí
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}
	return path
}

func newTestCatalog(t *testing.T, content string) *CSVCatalog {
	t.Helper()
	return NewCSVCatalog(writeCatalog(t, content), zap.NewNop().Sugar())
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func intPtr(v int) *int           { return &v }

func TestLoad_OK(t *testing.T) {

	catalog := newTestCatalog(t, testCatalog)

	if catalog.Len() != 7 {
		t.Errorf("expected 7 cars, got %d", catalog.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {

	catalog := NewCSVCatalog("/no/existe/catalog.csv", zap.NewNop().Sugar())

	if catalog.Len() != 0 {
		t.Errorf("expected empty catalog, got %d cars", catalog.Len())
	}
	if got := catalog.Filter(domain.Preferences{}); len(got) != 0 {
		t.Errorf("expected no recommendations from empty catalog")
	}
}

func TestLoad_EmptyFile(t *testing.T) {

	catalog := newTestCatalog(t, "")

	if catalog.Len() != 0 {
		t.Errorf("expected empty catalog for empty file")
	}
}

func TestLoad_MissingColumns(t *testing.T) {

	catalog := newTestCatalog(t, "stock_id,make,model\n1,Toyota,Corolla\n")

	if catalog.Len() != 0 {
		t.Errorf("expected empty catalog when required columns are missing")
	}
}

func TestLoad_BadStockIDDropsRow(t *testing.T) {

	catalog := newTestCatalog(t,
		"stock_id,km,price,make,model,year,version\n"+
			"abc,1000,100000,Toyota,Corolla,2020,LE\n"+
			"2,2000,120000,Nissan,Versa,2019,Advance\n")

	if catalog.Len() != 1 {
		t.Fatalf("expected 1 car, got %d", catalog.Len())
	}
	if _, err := catalog.GetByID(2); err != nil {
		t.Errorf("valid row should survive a malformed sibling: %v", err)
	}
}

func TestFilter_BudgetAndYearMin(t *testing.T) {

	catalog := newTestCatalog(t,
		"stock_id,km,price,make,model,year,version\n"+
			"1,1000,180000,Toyota,Corolla,2020,LE\n"+
			"2,2000,150000,Nissan,Versa,2018,Advance\n")

	got := catalog.Filter(domain.Preferences{
		Budget:  floatPtr(200000),
		YearMin: intPtr(2019),
	})

	if len(got) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(got))
	}
	if got[0].Year != 2020 {
		t.Errorf("expected the 2020 car, got %d", got[0].Year)
	}
}

func TestFilter_SortedAndCapped(t *testing.T) {

	catalog := newTestCatalog(t, testCatalog)

	got := catalog.Filter(domain.Preferences{})

	if len(got) != 5 {
		t.Fatalf("expected 5 results, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Price < got[i-1].Price {
			t.Errorf("results not sorted by price: %.2f before %.2f",
				got[i-1].Price, got[i].Price)
		}
	}
	if got[0].Price != 125000 {
		t.Errorf("expected cheapest car first, got %.2f", got[0].Price)
	}
}

func TestFilter_Monotonic(t *testing.T) {

	catalog := newTestCatalog(t, testCatalog)

	base := catalog.Filter(domain.Preferences{Budget: floatPtr(250000)})
	narrowed := catalog.Filter(domain.Preferences{
		Budget: floatPtr(250000),
		Brand:  strPtr("toyota"),
	})

	if len(narrowed) > len(base) {
		t.Errorf("adding a constraint grew the result set: %d > %d",
			len(narrowed), len(base))
	}
}

func TestFilter_BrandAndModelCaseInsensitive(t *testing.T) {

	catalog := newTestCatalog(t, testCatalog)

	byBrand := catalog.Filter(domain.Preferences{Brand: strPtr("TOYOTA")})
	if len(byBrand) != 1 || byBrand[0].Model != "Corolla" {
		t.Errorf("expected the Corolla for brand TOYOTA, got %v", byBrand)
	}

	byModel := catalog.Filter(domain.Preferences{Model: strPtr("vers")})
	if len(byModel) != 1 || byModel[0].Make != "Nissan" {
		t.Errorf("expected the Versa for model substring, got %v", byModel)
	}
}

func TestFilter_YearMax(t *testing.T) {

	catalog := newTestCatalog(t, testCatalog)

	got := catalog.Filter(domain.Preferences{YearMax: intPtr(2018)})
	for _, car := range got {
		if car.Year > 2018 {
			t.Errorf("car %d exceeds year_max", car.StockID)
		}
	}
	if len(got) != 2 {
		t.Errorf("expected 2 cars up to 2018, got %d", len(got))
	}
}

func TestGetByID(t *testing.T) {

	catalog := newTestCatalog(t, testCatalog)

	car, err := catalog.GetByID(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if car.Make != "Mazda" {
		t.Errorf("expected Mazda, got %s", car.Make)
	}

	if _, err := catalog.GetByID(99); !errors.Is(err, ErrCarNotFound) {
		t.Errorf("expected ErrCarNotFound, got %v", err)
	}
}
