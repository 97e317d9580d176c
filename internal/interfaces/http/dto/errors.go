package dto

import (
	"net/http"

	"github.com/costview/backend/internal/domain/shared"
)

// kindHTTPStatus maps every error kind to an HTTP status code. The mapping is
// total so a new kind cannot silently surface as 200.
var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.ErrKindItemNotFound:               http.StatusNotFound,
	shared.ErrKindItemAlreadyExist:           http.StatusConflict,
	shared.ErrKindInvalidRequest:             http.StatusBadRequest,
	shared.ErrKindExternalSourceNotSupported: http.StatusForbidden,
	shared.ErrKindExternalSourceCallError:    http.StatusInternalServerError,
	shared.ErrKindCurrencyServiceCallError:   http.StatusInternalServerError,
	shared.ErrKindInvalidConfiguration:       http.StatusInternalServerError,
	shared.ErrKindUnknown:                    http.StatusInternalServerError,
}

// HTTPStatus returns the status code for an error kind. Unmapped kinds fall
// back to 500.
func HTTPStatus(kind shared.ErrorKind) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
