package assets

import "embed"

// EnablementSchemaFile is the embedded JSON Schema document for the
// persisted enablement record.
const EnablementSchemaFile = "enablement.schema.json"

// EnablementSchemaFS embeds the enablement record schema.
//
//go:embed enablement.schema.json
var EnablementSchemaFS embed.FS
