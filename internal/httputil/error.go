package httputil

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func InternalServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
	} else {
		slog.Warn("bad request", "message", msg, "request_id", chimiddleware.GetReqID(r.Context()))
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
	} else {
		slog.Warn("not found", "message", msg, "request_id", chimiddleware.GetReqID(r.Context()))
	}
	http.Error(w, msg, http.StatusNotFound)
}

// SeeOther redirects after a successful form post so a refresh does not resubmit it.
func SeeOther(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
