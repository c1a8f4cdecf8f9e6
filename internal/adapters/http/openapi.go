package httpadapter

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiYAML []byte

var (
	openapiOnce sync.Once
	openapiJSON []byte
	openapiErr  error
)

// loadOpenAPISpec parses and validates the embedded contract once. A
// validation failure is a build defect, so it surfaces on every request
// instead of being swallowed at startup.
func loadOpenAPISpec() ([]byte, error) {
	openapiOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openapiYAML)
		if err != nil {
			openapiErr = fmt.Errorf("load openapi spec: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			openapiErr = fmt.Errorf("validate openapi spec: %w", err)
			return
		}
		openapiJSON, openapiErr = doc.MarshalJSON()
	})
	return openapiJSON, openapiErr
}

func (rt *Router) openapiSpec(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	raw, err := loadOpenAPISpec()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}
