package response

import "net/http"

// fixed code partition; codes not listed have no type
var statusTypes = map[int]StatusType{
	http.StatusOK:                   TypeSuccess,
	http.StatusCreated:              TypeSuccess,
	http.StatusAccepted:             TypeSuccess,
	http.StatusNonAuthoritativeInfo: TypeSuccess,
	http.StatusNoContent:            TypeSuccess,
	http.StatusResetContent:         TypeSuccess,
	http.StatusPartialContent:       TypePartialSuccess,
	299:                             TypeWarning,
	http.StatusMovedPermanently:     TypeInfo,
	http.StatusFound:                TypeInfo,
	http.StatusSeeOther:             TypeInfo,
	http.StatusNotModified:          TypeInfo,
	http.StatusBadRequest:           TypeError,
	http.StatusUnauthorized:         TypeError,
	http.StatusForbidden:            TypeError,
	http.StatusNotFound:             TypeError,
	http.StatusMethodNotAllowed:     TypeError,
	http.StatusConflict:             TypeError,
	http.StatusPreconditionFailed:   TypeError,
	http.StatusPreconditionRequired: TypeError,
	http.StatusInternalServerError:  TypeError,
	http.StatusNotImplemented:       TypeError,
	http.StatusServiceUnavailable:   TypeError,
}

// returns the category for a code and whether one is defined
func TypeOf(code int) (StatusType, bool) {
	t, ok := statusTypes[code]
	return t, ok
}

// builds the status block of the envelope from a handler status
func Classify(status Status) StatusBody {
	t, _ := TypeOf(status.Code)

	return StatusBody{
		Type:        t,
		Message:     status.Message,
		Description: status.Description,
	}
}
