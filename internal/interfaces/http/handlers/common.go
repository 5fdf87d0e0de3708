package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/types/assessment"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes err with an explicit status. Errors that are not
// AppErrors are masked as internal.
func writeError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.New(errors.ErrCodeInternal, "internal server error")
	}
	resp := assessment.ErrorResponse{
		Code:      appErr.Code.String(),
		Message:   appErr.Message,
		Detail:    appErr.Detail,
		Transient: errors.IsTransient(err),
		RequestID: chimw.GetReqID(r.Context()),
	}
	writeJSON(w, statusCode, resp)
}

// writeAppError maps application-level errors to HTTP status codes.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeError(w, r, errors.HTTPStatusForCode(appErr.Code), err)
}

//Personal.AI order the ending
