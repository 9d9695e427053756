// Package http holds the chi handlers and route wiring for both storefront
// surfaces: the anonymous catalog and the authenticated back office.
package http

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("malformed JSON body")
	}
	return nil
}
