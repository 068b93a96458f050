package component

import "fmt"

// Light brightness limits and default, in percent.
const (
	MinBrightness     = 0
	MaxBrightness     = 100
	DefaultBrightness = 100
)

// Light is the variant payload of a dimmable light.
type Light struct {
	Brightness int
}

// NewLight returns a light at full brightness.
func NewLight() *Light {
	return &Light{Brightness: DefaultBrightness}
}

// SetBrightness sets the brightness level. Out-of-range levels are rejected
// without changing state.
func (l *Light) SetBrightness(level int) (string, error) {
	if level < MinBrightness || level > MaxBrightness {
		return "", errBrightnessRange()
	}
	l.Brightness = level
	return fmt.Sprintf("Brightness set to %d%%", level), nil
}

func errBrightnessRange() error {
	return failf(ErrValidation, "Brightness must be %d-%d", MinBrightness, MaxBrightness)
}

func (l *Light) actions() []ActionDescriptor {
	return []ActionDescriptor{
		rangeAction("setBrightness", "Set Brightness", MinBrightness, MaxBrightness, float64(l.Brightness), "%"),
	}
}
