package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	"github.com/goliatone/go-cms-bootstrap/internal/paragraphs"
	"github.com/goliatone/go-cms-bootstrap/internal/permissions"
	"github.com/goliatone/go-cms-bootstrap/internal/validation"
	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
	"github.com/google/uuid"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message,omitempty"`
	Issues  []validation.Issue `json:"issues,omitempty"`
	Fields  map[string]string  `json:"fields,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" || trimmedBase == "/" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func wantsJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && mediaType == "application/json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func isAjax(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var paragraphNotFound *paragraphs.NotFoundError
	if errors.As(err, &paragraphNotFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: paragraphNotFound.Error()}
	}

	var carouselNotFound *carousel.NotFoundError
	if errors.As(err, &carouselNotFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: carouselNotFound.Error()}
	}

	if errors.Is(err, permissions.ErrPermissionDenied) || errors.Is(err, carousel.ErrAccessDenied) {
		return http.StatusForbidden, errorResponse{Error: "forbidden", Message: err.Error()}
	}

	if errors.Is(err, validation.ErrSchemaValidation) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
			Fields:  validation.FieldErrors(err),
		}
	}

	var fieldErrs ozzo.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for name, fieldErr := range fieldErrs {
			if fieldErr != nil {
				fields[name] = fieldErr.Error()
			}
		}
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Fields:  fields,
		}
	}

	if errors.Is(err, paragraphs.ErrTypeNotAllowed) ||
		errors.Is(err, carousel.ErrImageRequired) ||
		errors.Is(err, carousel.ErrStatusInvalid) {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation_failed", Message: err.Error()}
	}

	if errors.Is(err, errBadRequest) ||
		errors.Is(err, paragraphs.ErrHostRequired) ||
		errors.Is(err, paragraphs.ErrTypeRequired) ||
		errors.Is(err, paragraphs.ErrTypeUnknown) ||
		errors.Is(err, paragraphs.ErrParagraphIDRequired) ||
		errors.Is(err, carousel.ErrItemIDRequired) {
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

// pathUUID parses the named path value, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := parseUUID(r.PathValue(name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func requireAccount(w http.ResponseWriter, account interfaces.Account, permission string) bool {
	if account != nil && account.HasPermission(permission) {
		return true
	}
	writeError(w, permissions.Error{Permission: permission})
	return false
}

// redirectDestination answers with a 303 to the destination query value and
// reports whether it did. Only same-site paths are followed.
func redirectDestination(w http.ResponseWriter, r *http.Request) bool {
	destination := safeDestination(r.URL.Query().Get("destination"))
	if destination == "" {
		destination = safeDestination(r.PostFormValue("destination"))
	}
	if destination == "" {
		return false
	}
	http.Redirect(w, r, destination, http.StatusSeeOther)
	return true
}

func safeDestination(value string) string {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "/") || strings.HasPrefix(value, "//") {
		return ""
	}
	return value
}

func actorID(account interfaces.Account) string {
	if account == nil {
		return ""
	}
	return account.ID()
}
