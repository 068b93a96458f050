package component

import (
	"math"
	"strconv"
)

// Thermostat setpoint limits and default, in degrees Celsius.
const (
	MinTemperature     = 16.0
	MaxTemperature     = 30.0
	DefaultTemperature = 22.0
)

// Thermostat is the variant payload of a heating/cooling setpoint controller.
type Thermostat struct {
	Temperature float64
}

// NewThermostat returns a thermostat at the default setpoint.
func NewThermostat() *Thermostat {
	return &Thermostat{Temperature: DefaultTemperature}
}

// SetTemperature sets the target temperature. Fractional setpoints are
// allowed; out-of-range or non-finite values are rejected.
func (t *Thermostat) SetTemperature(temp float64) (string, error) {
	if math.IsNaN(temp) || temp < MinTemperature || temp > MaxTemperature {
		return "", errTemperatureRange()
	}
	t.Temperature = temp
	return "Temperature set to " + formatNumber(temp) + "°C", nil
}

func errTemperatureRange() error {
	return failf(ErrValidation, "Temperature must be %s-%s°C", formatNumber(MinTemperature), formatNumber(MaxTemperature))
}

func (t *Thermostat) actions() []ActionDescriptor {
	return []ActionDescriptor{
		rangeAction("setTemperature", "Set Temperature", MinTemperature, MaxTemperature, t.Temperature, "°C"),
	}
}

// formatNumber renders a float without trailing zeros (22 -> "22", 21.5 -> "21.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
