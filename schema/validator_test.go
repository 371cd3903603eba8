package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadSHOT/hooklint/config"
)

func TestNewValidator(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)
	require.NotNil(t, validator)
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: "https://github.com/pre-commit/pre-commit-hooks",
				Rev:  "v6.0.0",
				Hooks: []config.Hook{
					{ID: "trailing-whitespace"},
					{ID: "check-yaml", Args: []string{"--allow-multiple-documents"}},
				},
			},
		},
	}
	assert.NoError(t, validator.Validate(cfg))
}

func TestValidateRejectsMissingRepos(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	err = validator.Validate(map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repos")
}

func TestValidateRejectsHookWithoutID(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	raw := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://github.com/psf/black",
				"rev":  "25.1.0",
				"hooks": []interface{}{
					map[string]interface{}{"name": "black"},
				},
			},
		},
	}
	assert.Error(t, validator.Validate(raw))
}

func TestValidateRejectsUnknownHookField(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	raw := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://github.com/psf/black",
				"rev":  "25.1.0",
				"hooks": []interface{}{
					map[string]interface{}{"id": "black", "not_a_field": true},
				},
			},
		},
	}
	assert.Error(t, validator.Validate(raw))
}

func TestValidateRejectsEmptyHooksList(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	raw := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo":  "https://github.com/psf/black",
				"rev":   "25.1.0",
				"hooks": []interface{}{},
			},
		},
	}
	assert.Error(t, validator.Validate(raw))
}

func TestValidateAllowsTopLevelExtensions(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	raw := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo":  "meta",
				"hooks": []interface{}{map[string]interface{}{"id": "identity"}},
			},
		},
		"ci": map[string]interface{}{
			"autoupdate_schedule": "weekly",
		},
	}
	assert.NoError(t, validator.Validate(raw))
}

func TestValidateYAMLRejectsUnknownHookKey(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	// A typo'd hook key must fail even though the typed config structs
	// would silently drop it.
	doc := []byte(`repos:
  - repo: https://github.com/astral-sh/ruff-pre-commit
    rev: v0.12.0
    hooks:
      - id: ruff
        argz: [--fix]
`)
	err = validator.ValidateYAML(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argz")
}

func TestValidateYAMLRejectsUnknownRepoKey(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	doc := []byte(`repos:
  - repo: https://github.com/psf/black
    revision: 25.1.0
    hooks:
      - id: black
`)
	err = validator.ValidateYAML(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revision")
}

func TestValidateYAMLAllowsTopLevelExtensions(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	doc := []byte(`repos:
  - repo: meta
    hooks:
      - id: identity
ci:
  autoupdate_schedule: weekly
`)
	assert.NoError(t, validator.ValidateYAML(doc))
}

func TestValidateYAMLBadDocument(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	assert.Error(t, validator.ValidateYAML([]byte("repos: [unclosed")))
}

func TestValidateRejectsInvalidStage(t *testing.T) {
	validator, err := NewValidator()
	require.NoError(t, err)

	raw := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://github.com/psf/black",
				"rev":  "25.1.0",
				"hooks": []interface{}{
					map[string]interface{}{"id": "black", "stages": []interface{}{"post-push"}},
				},
			},
		},
	}
	assert.Error(t, validator.Validate(raw))
}
