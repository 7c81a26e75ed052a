package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidJSON is returned by Decode for bodies that are not a JSON object.
var ErrInvalidJSON = errors.New("request body is not valid JSON")

// Decode reads a single JSON object from r into dst. A value of the wrong
// JSON type is reported as ValidationErrors; malformed input, including
// anything after the object, wraps ErrInvalidJSON. Read errors stay
// reachable through errors.As.
func Decode(r io.Reader, dst Entity) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return fmt.Errorf("%w: trailing data after the object", ErrInvalidJSON)
	default:
		return fmt.Errorf("%w: trailing data after the object: %w", ErrInvalidJSON, err)
	}
}

func decodeError(err error) error {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ValidationErrors{typeMismatch("", typeErr)}
	}

	return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
}

// typeMismatch reports typeErr against the JSON path prefix+field. An empty
// path means the whole body had the wrong type.
func typeMismatch(prefix string, typeErr *json.UnmarshalTypeError) FieldError {
	field := prefix
	switch {
	case field == "" && typeErr.Field == "":
		field = "body"
	case field == "":
		field = typeErr.Field
	case typeErr.Field != "":
		field += "." + typeErr.Field
	}
	return FieldError{
		Field:  field,
		Reason: fmt.Sprintf("expected %s, got %s", jsonKind(typeErr.Type.Kind().String()), typeErr.Value),
	}
}

// nullValue is the FieldError for an explicit null where a value of kind is
// expected.
func nullValue(field, kind string) FieldError {
	return FieldError{Field: field, Reason: fmt.Sprintf("expected %s, got null", kind)}
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "slice", "array":
		return "array"
	case "struct", "map":
		return "object"
	case "float32", "float64":
		return "number"
	default:
		return "integer"
	}
}
