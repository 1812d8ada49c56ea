package pricing

import "fmt"

// ConfigError reports a malformed or incomplete MarketProfile. It is fatal:
// no estimation can run against a profile that failed validation.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("market profile: %s", e.Message)
	}
	return fmt.Sprintf("market profile: %s: %s", e.Field, e.Message)
}

// ValidationError reports structurally invalid house input. It is surfaced to
// the caller for correction and never silently repaired.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("house input: %s: %s", e.Field, e.Message)
}

// CalibrationError reports that a dataset cannot support calibration at all.
// Insufficient data for a single city is not an error (the city is omitted);
// an empty or unusable dataset is.
type CalibrationError struct {
	Message string
	Records int
}

// Error implements the error interface
func (e *CalibrationError) Error() string {
	return fmt.Sprintf("calibration: %s (%d usable records)", e.Message, e.Records)
}
