package helpers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidUUID reports whether s is a syntactically valid UUID. Both the public
// and the publisher-scoped single-event routes validate ids with this before
// invoking the service layer.
func ValidUUID(s string) bool {
	return uuidRegex.MatchString(s)
}

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and, if dest implements Validator, runs Validate(). On decode or validation failure
// it writes a 400 JSON error and returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return false
	}
	return validate(w, dest)
}

// UnmarshalAndValidate is DecodeAndValidate for payloads carried inside a
// multipart form field rather than the request body.
func UnmarshalAndValidate(w http.ResponseWriter, data string, dest any) bool {
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return false
	}
	return validate(w, dest)
}

func validate(w http.ResponseWriter, dest any) bool {
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeInvalidInput, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
