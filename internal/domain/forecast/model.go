package forecast

// FormInput is the raw snapshot of the three form fields.
type FormInput struct {
	Date        string `json:"date" form:"date"`
	Sector      string `json:"sector" form:"sector"`
	Temperature string `json:"temperature" form:"temperature"`
}

// PredictionRequest is the validated payload sent to the prediction endpoint.
type PredictionRequest struct {
	Date           string  `json:"date"`
	Sector         string  `json:"sector"`
	MinTempCelsius float64 `json:"min_temp_celsius"`
}

// PredictionResult is what the prediction endpoint answers on success.
type PredictionResult struct {
	Date                   string  `json:"date"`
	Sector                 string  `json:"sector"`
	MinTempCelsius         float64 `json:"min_temp_celsius"`
	PredictedShelterDemand int     `json:"predicted_shelter_demand"`
}

// ServiceHealth is the availability of the prediction service as last observed.
type ServiceHealth int

const (
	HealthUnknown ServiceHealth = iota
	HealthOnline
	HealthOffline
)

func (h ServiceHealth) String() string {
	switch h {
	case HealthOnline:
		return "online"
	case HealthOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Label is the badge text shown to the operator.
func (h ServiceHealth) Label() string {
	switch h {
	case HealthOnline:
		return "🟢 Online"
	case HealthOffline:
		return "🔴 Offline"
	default:
		return "⚪ Checking..."
	}
}

// Color is the badge color as a hex triplet.
func (h ServiceHealth) Color() string {
	switch h {
	case HealthOnline:
		return "#10b981"
	case HealthOffline:
		return "#ef4444"
	default:
		return "#9ca3af"
	}
}

// MarshalText renders the health as its lowercase name.
func (h ServiceHealth) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// TemperatureRange describes the temperatures the model was trained on.
type TemperatureRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"recommended_step"`
}

// Catalog lists the sectors and input guidance published by the prediction service.
type Catalog struct {
	Sectors     []string         `json:"sectors"`
	Temperature TemperatureRange `json:"temperatures_range"`
	SampleDates []string         `json:"sample_dates"`
}
