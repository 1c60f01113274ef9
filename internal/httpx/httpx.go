package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"launchpad-api/internal/apperr"
	"launchpad-api/internal/validation"
)

const maxJSONBody = 1 << 20

// DecodeJSON decodes a single JSON object. Unknown keys are ignored; type
// mismatches come back as body violations.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return apperr.BadRequest(validation.InvalidPayloadMessage).
			WithDetails([]validation.Violation{{Path: validation.LocationBody, Message: "Body must contain a single JSON object"}})
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		path := validation.LocationBody
		if typeErr.Field != "" {
			path += "." + typeErr.Field
		}
		return validation.Failed(validation.Violation{
			Path:    path,
			Message: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type.Kind().String()), typeErr.Value),
		})
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.BadRequest("Malformed JSON body").WithCause(err)
	case errors.As(err, &maxErr):
		return apperr.New(http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, io.EOF):
		return validation.Failed(validation.Violation{Path: validation.LocationBody, Message: "Request body is required"})
	default:
		return apperr.BadRequest(validation.InvalidPayloadMessage).WithCause(err)
	}
}

func jsonKind(goKind string) string {
	switch {
	case goKind == "string":
		return "string"
	case goKind == "bool":
		return "boolean"
	case strings.HasPrefix(goKind, "int"), strings.HasPrefix(goKind, "uint"), strings.HasPrefix(goKind, "float"):
		return "number"
	case goKind == "slice", goKind == "array":
		return "array"
	default:
		return "object"
	}
}
