package core

// Default speeds in pixels per second
const (
	DefaultSpeedMobile  = 50.0
	DefaultSpeedDesktop = 100.0
)

// MobileBreakpoint is the viewport width below which mobile speed applies
const MobileBreakpoint = 768.0

// Settings configures one loop instance
// Every field is independently defaultable; zero values mean "use default"
type Settings struct {
	SpeedMobile       float64
	SpeedDesktop      float64
	Reverse           bool
	StopOnHover       bool
	AllowClickthrough bool
	// NewWindowDefault applies to items whose button does not carry its
	// own new-window flag
	NewWindowDefault bool
}

// Normalize fills unset numeric fields with defaults and returns the result
// Negative speeds are treated as unset
func (s Settings) Normalize() Settings {
	if s.SpeedMobile <= 0 {
		s.SpeedMobile = DefaultSpeedMobile
	}
	if s.SpeedDesktop <= 0 {
		s.SpeedDesktop = DefaultSpeedDesktop
	}
	return s
}

// SpeedFor selects the configured speed for the given viewport width
func (s Settings) SpeedFor(viewportWidth float64) float64 {
	if viewportWidth < MobileBreakpoint {
		return s.SpeedMobile
	}
	return s.SpeedDesktop
}
