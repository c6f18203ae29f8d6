package entities

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ParameterSet is one request's soil/climate reading.
type ParameterSet struct {
	Rainfall    float64 `json:"rainfall"`    // mm
	Humidity    float64 `json:"humidity"`    // %
	Temperature float64 `json:"temperature"` // °C
	Phosphorus  float64 `json:"phosphorus"`  // mg/kg
	Nitrogen    float64 `json:"nitrogen"`    // mg/kg
}

// SampleParameters is the demo reading offered to first-time users.
func SampleParameters() ParameterSet {
	return ParameterSet{Rainfall: 1200, Humidity: 65, Temperature: 25, Phosphorus: 45, Nitrogen: 75}
}

// FieldErrors maps a parameter name to a user-facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid parameters: " + strings.Join(parts, "; ")
}

type paramRange struct {
	field    string
	min, max float64
	msg      string
}

var paramRanges = []paramRange{
	{"rainfall", 0, 5000, "Rainfall must be between 0-5000mm"},
	{"humidity", 0, 100, "Humidity must be between 0-100%"},
	{"temperature", -10, 50, "Temperature must be between -10°C to 50°C"},
	{"phosphorus", 0, 500, "Phosphorus must be between 0-500mg/kg"},
	{"nitrogen", 0, 500, "Nitrogen must be between 0-500mg/kg"},
}

func (p ParameterSet) value(field string) float64 {
	switch field {
	case "rainfall":
		return p.Rainfall
	case "humidity":
		return p.Humidity
	case "temperature":
		return p.Temperature
	case "phosphorus":
		return p.Phosphorus
	case "nitrogen":
		return p.Nitrogen
	}
	return math.NaN()
}

// Validate checks the recognized input ranges. It returns nil or a non-empty FieldErrors.
func (p ParameterSet) Validate() error {
	errs := FieldErrors{}
	for _, r := range paramRanges {
		v := p.value(r.field)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs[r.field] = fmt.Sprintf("%s must be a finite number", strings.ToUpper(r.field[:1])+r.field[1:])
			continue
		}
		if v < r.min || v > r.max {
			errs[r.field] = r.msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
