package config

import (
	"fmt"
	"regexp"

	"github.com/hadSHOT/hooklint/command"
	"github.com/hadSHOT/hooklint/errors"
)

var mutableRevRegex = regexp.MustCompile(`^(HEAD|master|main|trunk|develop|latest)$`)

// Validate checks the configuration for semantic problems the JSON Schema
// cannot express: revision pinning rules per repo kind, required fields for
// local hooks, known stage names, and regex fields that must compile.
func (c *Config) Validate() error {
	if len(c.Repos) == 0 {
		return errors.New(errors.ErrCodeConfigValidation, "configuration must declare at least one repository")
	}

	if err := validateRegexField("files", c.Files); err != nil {
		return err
	}
	if err := validateRegexField("exclude", c.Exclude); err != nil {
		return err
	}
	if err := validateStages("default_stages", c.DefaultStages); err != nil {
		return err
	}
	if err := validateStages("default_install_hook_types", c.DefaultInstallHookTypes); err != nil {
		return err
	}

	for i, repo := range c.Repos {
		r := repo
		if err := validateRepo(&r); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation,
				fmt.Sprintf("invalid repository entry %d (%s)", i, repo.Repo)).
				WithDetail("repo", repo.Repo).
				WithDetail("index", i)
		}
	}

	return nil
}

// Warnings returns advisory findings that do not make the configuration
// invalid: mutable revisions and hooks shadowed by duplicate ids within one
// repository entry.
func (c *Config) Warnings() []string {
	var warnings []string

	for _, repo := range c.Repos {
		if repo.IsRemote() && mutableRevRegex.MatchString(repo.Rev) {
			warnings = append(warnings, fmt.Sprintf(
				"%s pins mutable ref %q; pin a tag or commit so runs are reproducible", repo.Repo, repo.Rev))
		}

		seen := make(map[string]bool)
		for _, hook := range repo.Hooks {
			key := hook.ID
			if hook.Alias != "" {
				key = hook.ID + "/" + hook.Alias
			}
			if seen[key] {
				warnings = append(warnings, fmt.Sprintf(
					"%s declares hook %q more than once without distinct aliases", repo.Repo, hook.ID))
			}
			seen[key] = true
		}
	}

	return warnings
}

func validateRepo(repo *Repo) error {
	if repo.Repo == "" {
		return errors.New(errors.ErrCodeConfigValidation, "repo cannot be empty")
	}

	if len(repo.Hooks) == 0 {
		return errors.New(errors.ErrCodeConfigValidation, "repository must declare at least one hook")
	}

	switch {
	case repo.IsLocal():
		if repo.Rev != "" {
			return errors.New(errors.ErrCodeConfigValidation, "local repositories must not set 'rev'")
		}
		for _, hook := range repo.Hooks {
			h := hook
			if err := validateLocalHook(&h); err != nil {
				return err
			}
		}

	case repo.IsMeta():
		if repo.Rev != "" {
			return errors.New(errors.ErrCodeConfigValidation, "the meta repository must not set 'rev'")
		}
		for _, hook := range repo.Hooks {
			if !isMetaHook(hook.ID) {
				return errors.HookNotFound(hook.ID, RepoMeta, MetaHookIDs)
			}
		}

	default:
		if err := command.ValidateRepoURL(repo.Repo); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid repository URL")
		}
		if repo.Rev == "" {
			return errors.New(errors.ErrCodeConfigValidation, "remote repositories must pin a 'rev'")
		}
		if err := command.ValidateGitRef(repo.Rev); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid 'rev'")
		}
	}

	for _, hook := range repo.Hooks {
		h := hook
		if err := validateHook(&h); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation,
				fmt.Sprintf("invalid hook '%s'", hook.ID)).
				WithDetail("hook", hook.ID)
		}
	}

	return nil
}

func validateHook(hook *Hook) error {
	if err := command.ValidateHookID(hook.ID); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid hook id")
	}

	if err := validateRegexField("files", hook.Files); err != nil {
		return err
	}
	if err := validateRegexField("exclude", hook.Exclude); err != nil {
		return err
	}
	if err := validateStages("stages", hook.Stages); err != nil {
		return err
	}

	return nil
}

// validateLocalHook enforces the fields a hook needs when its repository
// provides no manifest to fall back on.
func validateLocalHook(hook *Hook) error {
	if hook.Name == "" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("local hook '%s' must set 'name'", hook.ID)).
			WithDetail("hook", hook.ID)
	}
	if hook.Entry == "" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("local hook '%s' must set 'entry'", hook.ID)).
			WithDetail("hook", hook.ID)
	}
	if hook.Language == "" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("local hook '%s' must set 'language'", hook.ID)).
			WithDetail("hook", hook.ID)
	}
	return nil
}

// validateRegexField checks that a file-matching pattern compiles. The format
// defines files/exclude as regular expressions, not globs.
func validateRegexField(field, pattern string) error {
	if pattern == "" {
		return nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation,
			fmt.Sprintf("'%s' is not a valid regular expression", field)).
			WithDetail("field", field).
			WithDetail("pattern", pattern)
	}
	return nil
}

func validateStages(field string, stages []string) error {
	for _, stage := range stages {
		if !isKnownStage(stage) {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("'%s' contains unknown hook type '%s'", field, stage)).
				WithDetail("field", field).
				WithDetail("stage", stage)
		}
	}
	return nil
}

func isKnownStage(stage string) bool {
	for _, known := range HookTypes {
		if stage == known {
			return true
		}
	}
	return false
}

func isMetaHook(id string) bool {
	for _, known := range MetaHookIDs {
		if id == known {
			return true
		}
	}
	return false
}
