// Package schema implements usecase.SchemaPort against the embedded
// enablement-record JSON Schema document.
package schema

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/astrosteveo/awesome-copilot-tui/assets"
)

// Adapter implements usecase.SchemaPort using gojsonschema against the
// schema embedded in the binary.
type Adapter struct {
	logger *slog.Logger

	once   sync.Once
	schema *gojsonschema.Schema
	loadErr error
}

// New creates a new schema adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("schema adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// ValidateEnablement validates document against the embedded enablement
// record schema, returning a descriptive error on any violation.
func (a *Adapter) ValidateEnablement(ctx context.Context, document []byte) error {
	_ = ctx
	a.once.Do(a.loadSchema)
	if a.loadErr != nil {
		return fmt.Errorf("load embedded schema: %w", a.loadErr)
	}

	result, err := a.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("validate enablement document: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("enablement document violates schema: %s", joinResultErrors(result.Errors()))
	}
	return nil
}

func (a *Adapter) loadSchema() {
	data, err := assets.EnablementSchemaFS.ReadFile(assets.EnablementSchemaFile)
	if err != nil {
		a.loadErr = fmt.Errorf("read embedded schema %s: %w", assets.EnablementSchemaFile, err)
		return
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		a.loadErr = fmt.Errorf("compile embedded schema: %w", err)
		return
	}
	a.schema = schema
}

func joinResultErrors(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}
