package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// decodeStrict rejects unknown fields and trailing garbage, the same
// strictness the teacher's gin-bound handlers get for free from binding
// tags — here done explicitly since the gateway decodes JSON by hand.
func decodeStrict(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected trailing data after JSON body")
	}
	return nil
}
