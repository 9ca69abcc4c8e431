package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	app_errors "chatshell/internal/errors"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies; the largest valid payload is a 32000
// character message.
const maxBodyBytes = 1 << 20

var (
	validate *validator.Validate
	once     sync.Once
)

func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// decodeAndValidate reads a JSON body into payload and checks its `validate`
// tags. Both malformed JSON and rule violations come back as ErrValidation.
// An empty body decodes to the zero value.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, payload any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(payload); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid request payload: %s", app_errors.ErrValidation, err.Error())
	}
	return validateRequest(payload)
}

// validateRequest checks a payload struct against the rules in its field tags.
// Violations are joined into one readable message wrapped in ErrValidation.
func validateRequest(payload any) error {
	err := getInstance().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var errorMessages []string
	for _, fieldErr := range validationErrors {
		// e.g. "Field 'Content' failed on the 'max' tag"
		errorMessages = append(errorMessages, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}

	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}
