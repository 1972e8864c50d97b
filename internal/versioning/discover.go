package versioning

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/docportal/internal/config"
)

// DiscoverFromGit lists documentation versions from the tags of a local git
// checkout (typically the content repository), filtered by a glob-style tag
// pattern such as "v*". A tag literally named "latest" is skipped so it cannot
// shadow the synthesized alias. Results are ordered newest-first.
func DiscoverFromGit(repoPath, tagPattern string) ([]string, error) {
	repository, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open content repository %s: %w", repoPath, err)
	}

	iter, err := repository.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	var versions []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := strings.TrimPrefix(ref.Name().String(), "refs/tags/")
		matched, merr := path.Match(tagPattern, name)
		if merr != nil {
			return fmt.Errorf("invalid tag pattern %q: %w", tagPattern, merr)
		}
		if matched && name != config.LatestAlias {
			versions = append(versions, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortVersions(versions)
	return versions, nil
}
