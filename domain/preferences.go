package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Preferences son los criterios de búsqueda extraídos de un mensaje del
// usuario. Todos los campos son opcionales: nil significa que esa
// dimensión no restringe la búsqueda.
type Preferences struct {
	Budget  *float64 `json:"budget,omitempty"`
	Brand   *string  `json:"brand,omitempty"`
	Model   *string  `json:"model,omitempty"`
	YearMin *int     `json:"year_min,omitempty"`
	YearMax *int     `json:"year_max,omitempty"`
}

// IsEmpty reports whether no constraint was extracted.
func (p Preferences) IsEmpty() bool {
	return p.Budget == nil && p.Brand == nil && p.Model == nil &&
		p.YearMin == nil && p.YearMax == nil
}

// DecodePreferences decodifica preferencias de forma tolerante: los
// campos numéricos aceptan número o string numérico ("200000"). Un
// valor individual mal formado se descarta sin invalidar el resto del
// objeto; los nombres de los campos descartados se devuelven para que
// quien llama pueda registrarlos. Solo un JSON mal formado produce
// error.
func DecodePreferences(data []byte) (Preferences, []string, error) {
	var fields struct {
		Budget  any `json:"budget"`
		Brand   any `json:"brand"`
		Model   any `json:"model"`
		YearMin any `json:"year_min"`
		YearMax any `json:"year_max"`
	}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return Preferences{}, nil, err
	}

	var prefs Preferences
	var dropped []string
	if v, ok := asFloat(fields.Budget); ok {
		prefs.Budget = &v
	} else if fields.Budget != nil {
		dropped = append(dropped, "budget")
	}
	if v, ok := asString(fields.Brand); ok {
		prefs.Brand = &v
	}
	if v, ok := asString(fields.Model); ok {
		prefs.Model = &v
	}
	if v, ok := asInt(fields.YearMin); ok {
		prefs.YearMin = &v
	} else if fields.YearMin != nil {
		dropped = append(dropped, "year_min")
	}
	if v, ok := asInt(fields.YearMax); ok {
		prefs.YearMax = &v
	} else if fields.YearMax != nil {
		dropped = append(dropped, "year_max")
	}
	return prefs, dropped, nil
}

// UnmarshalJSON aplica la decodificación tolerante también a los
// decodificadores estándar; los campos descartados se pierden en
// silencio por esta vía.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	prefs, _, err := DecodePreferences(data)
	if err != nil {
		return err
	}
	*p = prefs
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
