package httperr

import "errors"

// Stable business failure codes returned by the scheduling core.
const (
	CodeSlotUnavailable     = "slot_unavailable"
	CodeInvalidTransition   = "invalid_transition"
	CodeInvalidAvailability = "invalid_availability"
	CodeNotFound            = "not_found"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code, or "" for non-business errors.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
