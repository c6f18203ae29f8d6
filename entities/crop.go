package entities

// Requirements is the envelope a crop tolerates. Rainfall in mm, temperature in °C,
// humidity in percent.
type Requirements struct {
	MinRainfall float64 `json:"min_rainfall" yaml:"min_rainfall"`
	MaxRainfall float64 `json:"max_rainfall" yaml:"max_rainfall"`
	MinTemp     float64 `json:"min_temp"     yaml:"min_temp"`
	MaxTemp     float64 `json:"max_temp"     yaml:"max_temp"`
	MinHumidity float64 `json:"min_humidity" yaml:"min_humidity"`
}

type CropProfile struct {
	Key          string       `json:"key"          yaml:"key"`
	Name         string       `json:"crop_name"    yaml:"name"`
	Confidence   string       `json:"confidence"   yaml:"confidence"` // display only
	Score        string       `json:"score"        yaml:"score"`      // display only, overwritten when ranked
	Yield        string       `json:"yield"        yaml:"yield"`
	Season       string       `json:"season"       yaml:"season"`
	Reasoning    string       `json:"reasoning"    yaml:"reasoning"`
	Tags         []string     `json:"tags"         yaml:"tags"`
	Requirements Requirements `json:"requirements" yaml:"requirements"`
}
