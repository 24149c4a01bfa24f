package chart

// Config mirrors the subset of the Chart.js configuration the dashboard
// emits. The browser hands it to the chart library unchanged.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels,omitempty"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     []string  `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth"`
	BorderRadius    int       `json:"borderRadius,omitempty"`
	Circumference   int       `json:"circumference,omitempty"`
	Rotation        int       `json:"rotation,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
}

type Options struct {
	Responsive bool            `json:"responsive"`
	Cutout     string          `json:"cutout,omitempty"`
	Plugins    Plugins         `json:"plugins"`
	Scales     map[string]Axis `json:"scales,omitempty"`
}

type Plugins struct {
	Legend  Legend  `json:"legend"`
	Tooltip Tooltip `json:"tooltip"`
}

type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

type Tooltip struct {
	Enabled bool `json:"enabled"`
	// Labels are preformatted per data point; the page installs them as the
	// tooltip label callback since functions do not survive JSON.
	Labels []string `json:"labels,omitempty"`
}

type Axis struct {
	BeginAtZero bool       `json:"beginAtZero"`
	Min         *float64   `json:"min,omitempty"`
	Max         *float64   `json:"max,omitempty"`
	Title       *AxisTitle `json:"title,omitempty"`
}

type AxisTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

func float(v float64) *float64 { return &v }
