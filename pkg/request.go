package pkg

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxJSONBodySize = 1 << 20

// PathUUID parses the named mux path variable as a UUID.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// DecodeJSONBody decodes the request body into v. An empty body leaves v untouched.
func DecodeJSONBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodySize)).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}
