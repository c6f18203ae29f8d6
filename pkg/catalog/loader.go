package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"cropadvisor/entities"
)

// LoadFromFile reads a catalog override. Supported: .yaml/.yml, .csv and .xlsx (first sheet).
func LoadFromFile(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		return Parse(b)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("catalog: unsupported file type %q", filepath.Ext(path))
	}
}

// ReadCSV parses a header-first CSV table of crops.
func ReadCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("catalog: read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return fromRows(rows)
}

func loadXLSX(path string) (*Catalog, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open xlsx: %w", err)
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidCatalog)
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("catalog: read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows)
}

// norm folds header spelling differences: case, BOM, spaces, dashes, underscores.
func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type columns struct {
	key, name, confidence, score, yield, season, reasoning, tags int
	minRain, maxRain, minTemp, maxTemp, minHum                   int
}

func fromRows(rows [][]string) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidCatalog)
	}
	head := rows[0]
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cols := columns{
		key:        findAny("Key", "id", "slug"),
		name:       findAny("Name", "crop", "crop_name", "cropname"),
		confidence: findAny("Confidence"),
		score:      findAny("Score", "rating"),
		yield:      findAny("Yield", "baseline_yield", "expected_yield"),
		season:     findAny("Season", "growing_season"),
		reasoning:  findAny("Reasoning", "notes", "why"),
		tags:       findAny("Tags", "labels"),
		minRain:    findAny("min_rainfall", "rainfall_min", "minrainfallmm"),
		maxRain:    findAny("max_rainfall", "rainfall_max", "maxrainfallmm"),
		minTemp:    findAny("min_temp", "temp_min", "min_temperature"),
		maxTemp:    findAny("max_temp", "temp_max", "max_temperature"),
		minHum:     findAny("min_humidity", "humidity_min"),
	}
	if cols.name == -1 || cols.minRain == -1 || cols.maxRain == -1 || cols.minTemp == -1 || cols.maxTemp == -1 || cols.minHum == -1 {
		return nil, fmt.Errorf("%w: missing required columns, found headers %v; need at least Name, min_rainfall, max_rainfall, min_temp, max_temp, min_humidity", ErrInvalidCatalog, head)
	}

	var crops []entities.CropProfile
	for n, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		if get(cols.name) == "" {
			continue // blank row
		}
		line := n + 2
		num := func(idx int, label string) (float64, error) {
			v, err := strconv.ParseFloat(get(idx), 64)
			if err != nil {
				return 0, fmt.Errorf("%w: row %d: %s %q is not a number", ErrInvalidCatalog, line, label, get(idx))
			}
			return v, nil
		}
		var req entities.Requirements
		var err error
		if req.MinRainfall, err = num(cols.minRain, "min_rainfall"); err != nil {
			return nil, err
		}
		if req.MaxRainfall, err = num(cols.maxRain, "max_rainfall"); err != nil {
			return nil, err
		}
		if req.MinTemp, err = num(cols.minTemp, "min_temp"); err != nil {
			return nil, err
		}
		if req.MaxTemp, err = num(cols.maxTemp, "max_temp"); err != nil {
			return nil, err
		}
		if req.MinHumidity, err = num(cols.minHum, "min_humidity"); err != nil {
			return nil, err
		}
		crops = append(crops, entities.CropProfile{
			Key:          get(cols.key),
			Name:         get(cols.name),
			Confidence:   get(cols.confidence),
			Score:        get(cols.score),
			Yield:        get(cols.yield),
			Season:       get(cols.season),
			Reasoning:    get(cols.reasoning),
			Tags:         splitTags(get(cols.tags)),
			Requirements: req,
		})
	}
	return New(crops)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, t := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' }) {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
