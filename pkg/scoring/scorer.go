// Package scoring ranks catalog crops against a soil/climate reading and
// derives soil and fertilizer advice from the same reading.
package scoring

import (
	"math"

	"cropadvisor/entities"
)

// Component weights. They sum to 100.
const (
	RainfallWeight    = 40.0
	TemperatureWeight = 30.0
	HumidityWeight    = 20.0
	NutrientWeight    = 10.0
)

// Nutrient thresholds for the full bonus, mg/kg.
const (
	nitrogenBonusMin   = 50.0
	phosphorusBonusMin = 30.0
)

// Score returns the 0–100 fitness of crop for p. It never rejects input:
// out-of-range readings are scored, not validated.
func Score(crop entities.CropProfile, p entities.ParameterSet) float64 {
	req := crop.Requirements
	total := rainfallScore(req, p.Rainfall) +
		temperatureScore(req, p.Temperature) +
		humidityScore(req, p.Humidity) +
		nutrientScore(p.Nitrogen, p.Phosphorus)
	return math.Min(100, math.Max(0, total))
}

// Each 100mm outside the envelope costs one point.
func rainfallScore(req entities.Requirements, rainfall float64) float64 {
	if rainfall >= req.MinRainfall && rainfall <= req.MaxRainfall {
		return RainfallWeight
	}
	return math.Max(0, RainfallWeight-boundaryDistance(rainfall, req.MinRainfall, req.MaxRainfall)/100)
}

// Each °C outside the envelope costs one point.
func temperatureScore(req entities.Requirements, temp float64) float64 {
	if temp >= req.MinTemp && temp <= req.MaxTemp {
		return TemperatureWeight
	}
	return math.Max(0, TemperatureWeight-boundaryDistance(temp, req.MinTemp, req.MaxTemp))
}

func humidityScore(req entities.Requirements, humidity float64) float64 {
	if humidity >= req.MinHumidity {
		return HumidityWeight
	}
	return math.Max(0, HumidityWeight-(req.MinHumidity-humidity)/2)
}

// nutrientScore awards the full bonus only when both nutrients clear their
// thresholds. The partial branch is not capped at NutrientWeight; only the
// final clamp in Score bounds it.
func nutrientScore(nitrogen, phosphorus float64) float64 {
	if nitrogen > nitrogenBonusMin && phosphorus > phosphorusBonusMin {
		return NutrientWeight
	}
	return math.Max(0, (nitrogen/nitrogenBonusMin+phosphorus/phosphorusBonusMin)*5)
}

// boundaryDistance is the distance from v to the nearer of the two bounds.
func boundaryDistance(v, lo, hi float64) float64 {
	return math.Min(math.Abs(v-lo), math.Abs(v-hi))
}
