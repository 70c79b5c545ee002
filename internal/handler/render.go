package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/msomdec/auction-house/internal/domain"
	"github.com/msomdec/auction-house/internal/view"
)

// render writes a full HTML page with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "path", r.URL.Path, "error", err)
	}
}

// renderError writes the error page for status.
func renderError(w http.ResponseWriter, r *http.Request, status int) {
	var detail string
	switch status {
	case http.StatusNotFound:
		detail = "The page you are looking for does not exist."
	case http.StatusBadRequest:
		detail = "The request could not be understood."
	default:
		detail = "An unexpected error occurred. Please try again."
	}
	render(w, r, status, view.ErrorPage(username(r), status, http.StatusText(status), detail))
}

// handleServiceError maps a service error to an error page. Missing listings,
// other users' listings and closed listings all read as not found.
func handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrListingClosed):
		renderError(w, r, http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidInput):
		renderError(w, r, http.StatusBadRequest)
	default:
		slog.Error(op, "path", r.URL.Path, "error", err)
		renderError(w, r, http.StatusInternalServerError)
	}
}

// pathID parses the {id} path value. It writes a 400 page and returns false
// when the value is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// formMessage turns a validation error into the sentence shown on the form.
func formMessage(err error) string {
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, domain.ErrInvalidInput.Error()+": "); ok {
		msg = after
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

func username(r *http.Request) string {
	if user := UserFromContext(r.Context()); user != nil {
		return user.Username
	}
	return ""
}

// isDatastar reports whether the request was issued by the datastar client.
func isDatastar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}

func displayPath(id int64) string {
	return "/display/" + strconv.FormatInt(id, 10)
}
