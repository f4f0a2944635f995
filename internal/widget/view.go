package widget

import (
	"strconv"
	"strings"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/pkg/utils"
)

// Assets resolves illustrations to URLs under Base
type Assets struct {
	Base string
}

// URL returns the public path of ill
func (a Assets) URL(ill domain.Illustration) string {
	return strings.TrimRight(a.Base, "/") + "/" + string(ill)
}

// DisplayState is everything the page needs to render the widget
type DisplayState struct {
	Query  string `json:"query"`
	Status string `json:"status"`

	ShowResult  bool   `json:"show_result"`
	Location    string `json:"location,omitempty"`
	IconURL     string `json:"icon_url,omitempty"`
	IconAlt     string `json:"icon_alt,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	Description string `json:"description,omitempty"`
	Humidity    string `json:"humidity,omitempty"`
	WindSpeed   string `json:"wind_speed,omitempty"`

	Panel       string `json:"panel"`
	PanelClass  string `json:"panel_class"`
	Revealed    bool   `json:"revealed"`
	RevealClass string `json:"reveal_class"`

	ShowError            bool   `json:"show_error"`
	ErrorCode            string `json:"error_code,omitempty"`
	ErrorMessage         string `json:"error_message,omitempty"`
	ErrorIllustrationURL string `json:"error_illustration_url,omitempty"`

	Seq uint64 `json:"seq"`
}

var panelClasses = map[PanelSize]string{
	PanelCollapsed:     "max-h-0",
	PanelExpanded:      "max-h-80",
	PanelUnconstrained: "max-h-none",
}

// View derives the display from s
func View(s State, assets Assets) DisplayState {
	d := DisplayState{
		Query:       s.Query,
		Status:      "idle",
		Panel:       s.Panel.String(),
		PanelClass:  panelClasses[s.Panel],
		Revealed:    s.Revealed,
		RevealClass: "-translate-y-full",
		Seq:         s.Seq,
	}
	if s.Revealed {
		d.RevealClass = "translate-y-0"
	}

	switch o := s.Outcome.(type) {
	case Loading:
		d.Status = "loading"

	case Success:
		rec := o.Record
		d.Status = "success"
		d.ShowResult = true
		d.Location = strings.ToUpper(rec.Location)
		d.IconURL = assets.URL(domain.IllustrationFor(rec.Condition))
		d.IconAlt = rec.Description
		d.Temperature = strconv.Itoa(utils.RoundHalfUp(rec.TemperatureC)) + "°C"
		d.Description = rec.Description
		d.Humidity = strconv.Itoa(rec.Humidity) + "%"
		d.WindSpeed = utils.FormatNumber(rec.WindSpeed) + " Km/h"

	case Failure:
		d.Status = "error"
		d.ShowError = true
		d.ErrorCode = o.Err.Code
		d.ErrorMessage = o.Err.Message
		if ill, ok := o.Err.Illustration(); ok {
			d.ErrorIllustrationURL = assets.URL(ill)
		}
	}

	return d
}
