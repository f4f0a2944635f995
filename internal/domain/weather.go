package domain

import "time"

// Condition is the coarse weather classification used to pick an illustration
type Condition int

const (
	ConditionOther Condition = iota
	ConditionClear
	ConditionRain
	ConditionSnow
	ConditionClouds
	ConditionMist
)

// ParseCondition maps the provider's "main" field onto a Condition.
// Matching is exact; anything unrecognised is ConditionOther.
func ParseCondition(main string) Condition {
	switch main {
	case "Clear":
		return ConditionClear
	case "Rain":
		return ConditionRain
	case "Snow":
		return ConditionSnow
	case "Clouds":
		return ConditionClouds
	case "Mist":
		return ConditionMist
	default:
		return ConditionOther
	}
}

func (c Condition) String() string {
	switch c {
	case ConditionClear:
		return "Clear"
	case ConditionRain:
		return "Rain"
	case ConditionSnow:
		return "Snow"
	case ConditionClouds:
		return "Clouds"
	case ConditionMist:
		return "Mist"
	default:
		return "Other"
	}
}

// Illustration references one of the static images shipped with the widget
type Illustration string

const (
	IllustrationClear    Illustration = "clear.png"
	IllustrationRain     Illustration = "rain.png"
	IllustrationSnow     Illustration = "snow.png"
	IllustrationCloud    Illustration = "cloud.png"
	IllustrationMist     Illustration = "mist.png"
	IllustrationNotFound Illustration = "404.png"
)

// IllustrationFor is total: Other falls back to the cloud image.
func IllustrationFor(c Condition) Illustration {
	switch c {
	case ConditionClear:
		return IllustrationClear
	case ConditionRain:
		return IllustrationRain
	case ConditionSnow:
		return IllustrationSnow
	case ConditionMist:
		return IllustrationMist
	default:
		return IllustrationCloud
	}
}

// WeatherRecord is the display-ready result of a successful lookup
type WeatherRecord struct {
	Location      string    `json:"location"`
	Condition     Condition `json:"-"`
	ConditionMain string    `json:"condition"`
	Description   string    `json:"description"`
	TemperatureC  float64   `json:"temperature"`
	Humidity      int       `json:"humidity"`
	WindSpeed     float64   `json:"wind_speed"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// WeatherResponse wraps a record for the stateless API
type WeatherResponse struct {
	Data    WeatherRecord `json:"data"`
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
}
