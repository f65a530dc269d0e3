package datapoint

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OneOrMany decodes a JSON array, or a single object standing in for a
// one-element array. DataPoint collapses single-element lists this way.
type OneOrMany[T any] []T

func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var many []T
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}

	var one T
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*o = OneOrMany[T]{one}
	return nil
}

// SiteListResponse is the body of the sitelist resource
type SiteListResponse struct {
	Locations *struct {
		Location OneOrMany[Site] `json:"Location"`
	} `json:"Locations"`
}

// Sites returns the listed sites, or a ParseError if the container is missing
func (r *SiteListResponse) Sites() ([]Site, error) {
	if r == nil || r.Locations == nil {
		return nil, &ParseError{Resource: "sitelist", Reason: "missing Locations container"}
	}
	return r.Locations.Location, nil
}

// Site is one entry in the site list. DataPoint sends every value as a string.
type Site struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Latitude        string `json:"latitude"`
	Longitude       string `json:"longitude"`
	Elevation       string `json:"elevation"`
	Region          string `json:"region"`
	UnitaryAuthArea string `json:"unitaryAuthArea"`
}

// ForecastResponse is the body of the per-site 3-hourly forecast resource
type ForecastResponse struct {
	SiteRep *struct {
		Wx struct {
			Param []Param `json:"Param"`
		} `json:"Wx"`
		DV *struct {
			DataDate string            `json:"dataDate"`
			Type     string            `json:"type"`
			Location *ForecastLocation `json:"Location"`
		} `json:"DV"`
	} `json:"SiteRep"`
}

// Param describes one report field code
type Param struct {
	Name        string `json:"name"`
	Units       string `json:"units"`
	Description string `json:"$"`
}

// ForecastLocation holds the forecast days for a single site
type ForecastLocation struct {
	ID        string             `json:"i"`
	Name      string             `json:"name"`
	Latitude  string             `json:"lat"`
	Longitude string             `json:"lon"`
	Country   string             `json:"country"`
	Continent string             `json:"continent"`
	Elevation string             `json:"elevation"`
	Period    *OneOrMany[Period] `json:"Period"`
}

// Period is one forecast day
type Period struct {
	Type  string            `json:"type"`
	Value string            `json:"value"`
	Rep   OneOrMany[Report] `json:"Rep"`
}

// Periods returns the forecast days, or a ParseError if any container on the
// SiteRep > DV > Location > Period path is missing
func (r *ForecastResponse) Periods() ([]Period, error) {
	switch {
	case r == nil || r.SiteRep == nil:
		return nil, &ParseError{Resource: "forecast", Reason: "missing SiteRep container"}
	case r.SiteRep.DV == nil:
		return nil, &ParseError{Resource: "forecast", Reason: "missing SiteRep.DV container"}
	case r.SiteRep.DV.Location == nil:
		return nil, &ParseError{Resource: "forecast", Reason: "missing SiteRep.DV.Location container"}
	case r.SiteRep.DV.Location.Period == nil:
		return nil, &ParseError{Resource: "forecast", Reason: "missing SiteRep.DV.Location.Period list"}
	}
	return *r.SiteRep.DV.Location.Period, nil
}

// Field is one value of a report. Null is set when the source value was null.
type Field struct {
	Name  string
	Value string
	Null  bool
}

// Report is one 3-hour forecast observation. Fields keep their source order.
type Report struct {
	Fields []Field
}

// UnmarshalJSON reads the report object key by key to keep field order
func (r *Report) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("report must be an object, got %v", tok)
	}

	r.Fields = r.Fields[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected report key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("report field %q: %w", key, err)
		}
		field, err := scalarField(key, raw)
		if err != nil {
			return err
		}
		r.Fields = append(r.Fields, field)
	}

	_, err = dec.Token()
	return err
}

func scalarField(name string, raw json.RawMessage) (Field, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return Field{Name: name, Null: true}, nil
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Field{}, fmt.Errorf("report field %q: %w", name, err)
		}
		return Field{Name: name, Value: s}, nil
	case trimmed[0] == '{' || trimmed[0] == '[':
		return Field{}, fmt.Errorf("report field %q is not a scalar", name)
	default:
		// numbers and booleans keep their literal text
		return Field{Name: name, Value: string(trimmed)}, nil
	}
}
