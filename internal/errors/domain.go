package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/Mees070/woningprijs-calculater/internal/pricing"
)

// FromDomain maps a pricing error onto its API representation. Invalid
// input is the caller's fault, a broken profile is ours, and an unusable
// dataset is a semantic failure rather than a malformed request.
func FromDomain(err error) *APIError {
	var validationErr *pricing.ValidationError
	if stderrors.As(err, &validationErr) {
		return ErrValidation(validationErr.Field, validationErr.Message)
	}

	var configErr *pricing.ConfigError
	if stderrors.As(err, &configErr) {
		return NewWithDetails(http.StatusInternalServerError, "PROFILE_INVALID",
			"Market profile failed validation", configErr.Error())
	}

	var calibrationErr *pricing.CalibrationError
	if stderrors.As(err, &calibrationErr) {
		return NewWithDetails(http.StatusUnprocessableEntity, "CALIBRATION_FAILED",
			"Dataset cannot support calibration", calibrationErr.Error())
	}

	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"Internal server error", err.Error())
}
