package config

import _ "embed"

//go:embed schema.json
var schema []byte

// Schema returns the JSON Schema of the configuration file.
func Schema() []byte {
	return schema
}
