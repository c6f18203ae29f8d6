package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cropadvisor/entities"
)

func TestDefault_Order(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	want := []string{"rice", "wheat", "corn", "soybean", "barley", "cotton", "sugarcane", "tomato", "potato", "chickpea"}
	entries := cat.Entries()
	require.Len(t, entries, len(want))
	for i, e := range entries {
		assert.Equal(t, want[i], e.Key)
	}
	assert.Equal(t, "Corn (Maize)", entries[2].Name)
	assert.Equal(t, entities.Requirements{MinRainfall: 1000, MaxRainfall: 3000, MinTemp: 20, MaxTemp: 35, MinHumidity: 60}, entries[0].Requirements)
}

func TestDefault_SameInstance(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	entries := cat.Entries()
	entries[0].Name = "Mutated"
	entries[0].Tags[0] = "Mutated"

	rice, ok := cat.Get("rice")
	require.True(t, ok)
	assert.Equal(t, "Rice", rice.Name)
	assert.Equal(t, "High Yield", rice.Tags[0])
}

func TestGet(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	c, ok := cat.Get("Sugarcane")
	require.True(t, ok)
	assert.Equal(t, "Year Round", c.Season)

	_, ok = cat.Get("quinoa")
	assert.False(t, ok)
}

func TestNew_Invalid(t *testing.T) {
	good := entities.Requirements{MinRainfall: 100, MaxRainfall: 200, MinTemp: 5, MaxTemp: 20, MinHumidity: 30}
	tests := []struct {
		name  string
		crops []entities.CropProfile
	}{
		{"empty", nil},
		{"no name", []entities.CropProfile{{Requirements: good}}},
		{"rainfall inverted", []entities.CropProfile{{Name: "A", Requirements: entities.Requirements{MinRainfall: 300, MaxRainfall: 200}}}},
		{"temp inverted", []entities.CropProfile{{Name: "A", Requirements: entities.Requirements{MinTemp: 30, MaxTemp: 20}}}},
		{"negative rainfall", []entities.CropProfile{{Name: "A", Requirements: entities.Requirements{MinRainfall: -1, MaxRainfall: 20}}}},
		{"negative humidity", []entities.CropProfile{{Name: "A", Requirements: entities.Requirements{MinHumidity: -5}}}},
		{"duplicate key", []entities.CropProfile{{Key: "a", Name: "A", Requirements: good}, {Key: "A", Name: "B", Requirements: good}}},
		{"duplicate name", []entities.CropProfile{{Key: "a", Name: "Same", Requirements: good}, {Key: "b", Name: "Same", Requirements: good}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.crops)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog), "got %v", err)
		})
	}
}

func TestNew_NegativeTemperatureAllowed(t *testing.T) {
	cat, err := New([]entities.CropProfile{{Name: "Winter Rye", Requirements: entities.Requirements{MinRainfall: 0, MaxRainfall: 500, MinTemp: -5, MaxTemp: 15}}})
	require.NoError(t, err)
	c, ok := cat.Get("winter-rye")
	require.True(t, ok, "key derived from name")
	assert.Equal(t, -5.0, c.Requirements.MinTemp)
}

const sampleCSV = "\uFEFFCrop Name,Key,Season,Tags,Min Rainfall,Max-Rainfall,min_temp,MAX_TEMP,min humidity\n" +
	"Millet,millet,Kharif,Hardy;Drought Tolerant,200,600,25,35,30\n" +
	",,,,,,,,\n" +
	"Sorghum,,Kharif,,300,900,22,38,35\n"

func TestReadCSV(t *testing.T) {
	cat, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	m, ok := cat.Get("millet")
	require.True(t, ok)
	assert.Equal(t, []string{"Hardy", "Drought Tolerant"}, m.Tags)
	assert.Equal(t, 600.0, m.Requirements.MaxRainfall)

	s, ok := cat.Get("sorghum")
	require.True(t, ok)
	assert.Equal(t, 38.0, s.Requirements.MaxTemp)
}

func TestReadCSV_NamesSharingFirstWord(t *testing.T) {
	cat, err := ReadCSV(strings.NewReader("name,min_rainfall,max_rainfall,min_temp,max_temp,min_humidity\n" +
		"Corn (Maize),500,2000,18,32,50\n" +
		"Corn Sweet,500,1500,18,30,50\n"))
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	maize, ok := cat.Get("corn-maize")
	require.True(t, ok)
	assert.Equal(t, "Corn (Maize)", maize.Name)
	sweet, ok := cat.Get("corn-sweet")
	require.True(t, ok)
	assert.Equal(t, 30.0, sweet.Requirements.MaxTemp)
}

func TestKeyOf(t *testing.T) {
	cases := map[string]string{
		"Rice":             "rice",
		"Corn (Maize)":     "corn-maize",
		"  Pigeon / Pea  ": "pigeon-pea",
		"Durum Wheat 2":    "durum-wheat-2",
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, keyOf(name))
		})
	}
}

func TestReadCSV_MissingColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Name,min_rainfall\nRice,100\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestReadCSV_BadNumber(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("name,min_rainfall,max_rainfall,min_temp,max_temp,min_humidity\nRice,lots,3000,20,35,60\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crops.yml")
	doc := `crops:
  - name: Millet
    requirements: {min_rainfall: 200, max_rainfall: 600, min_temp: 25, max_temp: 35, min_humidity: 30}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cat, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
}

func TestLoadFromFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crops.xlsx")
	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	rows := [][]any{
		{"Name", "Yield", "min_rainfall", "max_rainfall", "min_temp", "max_temp", "min_humidity"},
		{"Teff", "1-2 tons/hectare", 450, 1000, 10, 27, 40},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, x.SetSheetRow(sheet, cell, &r))
	}
	require.NoError(t, x.SaveAs(path))
	require.NoError(t, x.Close())

	cat, err := LoadFromFile(path)
	require.NoError(t, err)
	teff, ok := cat.Get("teff")
	require.True(t, ok)
	assert.Equal(t, "1-2 tons/hectare", teff.Yield)
	assert.Equal(t, 27.0, teff.Requirements.MaxTemp)
}

func TestLoadFromFile_Unsupported(t *testing.T) {
	_, err := LoadFromFile("crops.json")
	require.Error(t, err)
}
