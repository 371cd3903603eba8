package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the hook configuration format.
// It reflects the Config struct but excludes the 'Extensions' field: unknown
// top-level keys are allowed for forward compatibility, so the schema keeps
// additionalProperties open at the top level only.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Hook and Repo entries are closed; typos in their keys should fail.
		AllowAdditionalProperties: false,
		// Expand struct references instead of using $ref for cleaner base schema.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	// Reflect a shadow struct without the Extensions inline map so it does
	// not leak into the schema.
	type baseConfig struct {
		Repos                   []Repo            `yaml:"repos" jsonschema:"required,description=Hook repositories and the hooks taken from them"`
		DefaultInstallHookTypes []string          `yaml:"default_install_hook_types,omitempty" jsonschema:"description=Hook types installed by default"`
		DefaultLanguageVersion  map[string]string `yaml:"default_language_version,omitempty" jsonschema:"description=Default language runtime versions keyed by language"`
		DefaultStages           []string          `yaml:"default_stages,omitempty" jsonschema:"description=Default stages for hooks that do not set their own"`
		Files                   string            `yaml:"files,omitempty" jsonschema:"description=Global file-selection regular expression"`
		Exclude                 string            `yaml:"exclude,omitempty" jsonschema:"description=Global file-exclusion regular expression"`
		FailFast                bool              `yaml:"fail_fast,omitempty" jsonschema:"description=Stop running hooks after the first failure"`
		MinimumVersion          string            `yaml:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this config"`
	}

	schema := r.Reflect(&baseConfig{})
	schema.Title = "Pre-commit Hook Configuration"
	schema.Description = "Schema for .pre-commit-config.yaml files."
	schema.Version = "http://json-schema.org/draft-07/schema#"
	// Tolerate unknown top-level keys (ci blocks, tool extensions).
	schema.AdditionalProperties = nil

	return json.MarshalIndent(schema, "", "  ")
}
