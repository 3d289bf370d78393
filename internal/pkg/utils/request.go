package utils

import (
	"net/http"
	"vetcare-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// DecodeAndValidate reads the JSON body of r into dst and runs struct validation.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}

	err = ValidateStruct(dst)
	if err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}
