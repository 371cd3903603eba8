package git

import (
	"context"
	"fmt"
	"sort"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/hadSHOT/hooklint/command"
	"github.com/hadSHOT/hooklint/errors"
)

// IsGitRepo checks if the given directory is inside a git repository
func IsGitRepo(dir string) bool {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(context.Background(), "git", "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	execCmd := cmd.Exec()
	execCmd.Dir = dir
	err = execCmd.Run()
	return err == nil
}

// GetGitRoot returns the root directory of the git repository
func GetGitRoot(dir string) (string, error) {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(context.Background(), "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = dir
	output, err := execCmd.Output()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeNotARepo, "get git root").
			WithDetail("dir", dir)
	}

	return strings.TrimSpace(string(output)), nil
}

// ResolveRef resolves a git ref (branch name, tag, or commit) to its full commit hash.
// Returns empty string and error if resolution fails.
func ResolveRef(dir, ref string) (string, error) {
	cmdBuilder := command.NewSafeBuilder()
	if err := cmdBuilder.Validate("gitRef", ref); err != nil {
		return "", err
	}
	cmd, err := cmdBuilder.Build(context.Background(), "git", "rev-parse", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = dir
	output, err := execCmd.Output()
	if err != nil {
		return "", fmt.Errorf("resolve ref %s: %w", ref, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RemoteTag is one tag advertised by a remote repository.
type RemoteTag struct {
	Name   string
	Commit string
}

// LsRemoteTags lists the tags a remote repository advertises, without cloning
// it. Peeled entries (tag^{}) take precedence so annotated tags report the
// commit they point at.
func LsRemoteTags(ctx context.Context, repoURL string) ([]RemoteTag, error) {
	cmdBuilder := command.NewSafeBuilder()
	if err := cmdBuilder.Validate("repoURL", repoURL); err != nil {
		return nil, err
	}

	cmd, err := cmdBuilder.Build(ctx, "git", "ls-remote", "--tags", repoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build command: %w", err)
	}
	output, err := cmd.Exec().Output()
	if err != nil {
		return nil, errors.RepoUnreachable(repoURL, err)
	}

	commits := make(map[string]string)
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		ref := strings.TrimPrefix(fields[1], "refs/tags/")
		if peeled := strings.TrimSuffix(ref, "^{}"); peeled != ref {
			// Peeled entry: overwrite the annotated tag object's hash.
			commits[peeled] = fields[0]
		} else if _, seen := commits[ref]; !seen {
			commits[ref] = fields[0]
		}
	}

	tags := make([]RemoteTag, 0, len(commits))
	for name, commit := range commits {
		tags = append(tags, RemoteTag{Name: name, Commit: commit})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// RemoteHead returns the commit hash the remote's HEAD points at.
func RemoteHead(ctx context.Context, repoURL string) (string, error) {
	cmdBuilder := command.NewSafeBuilder()
	if err := cmdBuilder.Validate("repoURL", repoURL); err != nil {
		return "", err
	}

	cmd, err := cmdBuilder.Build(ctx, "git", "ls-remote", repoURL, "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	output, err := cmd.Exec().Output()
	if err != nil {
		return "", errors.RepoUnreachable(repoURL, err)
	}

	fields := strings.Fields(string(output))
	if len(fields) == 0 {
		return "", errors.RepoUnreachable(repoURL, fmt.Errorf("empty ls-remote output"))
	}
	return fields[0], nil
}

// LatestVersionTag selects the highest tag that parses as a version. Tags
// that do not parse (nightly markers, arbitrary names) are skipped.
func LatestVersionTag(tags []RemoteTag) (RemoteTag, error) {
	var best RemoteTag
	var bestVersion *goversion.Version

	for _, tag := range tags {
		v, err := goversion.NewVersion(strings.TrimPrefix(tag.Name, "v"))
		if err != nil {
			continue
		}
		if v.Prerelease() != "" {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best = tag
			bestVersion = v
		}
	}

	if bestVersion == nil {
		return RemoteTag{}, errors.New(errors.ErrCodeNoVersionTags, "repository has no version tags")
	}
	return best, nil
}

// CloneAtRev performs a shallow clone of repoURL at the given rev into dest.
// Tags and commits are both accepted; branch names work as a side effect.
func CloneAtRev(ctx context.Context, repoURL, rev, dest string) error {
	cmdBuilder := command.NewSafeBuilder()
	if err := cmdBuilder.Validate("repoURL", repoURL); err != nil {
		return err
	}
	if err := cmdBuilder.Validate("gitRef", rev); err != nil {
		return err
	}

	// Try the cheap path first: fetch just the requested rev.
	cmd, err := cmdBuilder.Build(ctx, "git", "clone", "--quiet", "--depth", "1", "--branch", rev, repoURL, dest)
	if err != nil {
		return fmt.Errorf("failed to build command: %w", err)
	}
	if err := cmd.Exec().Run(); err == nil {
		return nil
	}

	// --branch only accepts branch and tag names. For a commit rev, fall
	// back to a full clone plus checkout.
	cmd, err = cmdBuilder.Build(ctx, "git", "clone", "--quiet", repoURL, dest)
	if err != nil {
		return fmt.Errorf("failed to build command: %w", err)
	}
	if err := cmd.Exec().Run(); err != nil {
		return errors.Wrap(err, errors.ErrCodeGitCloneFailed, "clone repository").
			WithDetail("repo", repoURL)
	}

	cmd, err = cmdBuilder.Build(ctx, "git", "checkout", "--quiet", rev)
	if err != nil {
		return fmt.Errorf("failed to build command: %w", err)
	}
	checkout := cmd.Exec()
	checkout.Dir = dest
	if err := checkout.Run(); err != nil {
		return errors.RevNotFound(repoURL, rev)
	}

	return nil
}
