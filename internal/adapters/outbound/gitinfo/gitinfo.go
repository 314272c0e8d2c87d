package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Repo implements domain.GitInfo using go-git. Paths inside a working
// tree resolve to the enclosing repository.
type Repo struct{}

func New() *Repo {
	return &Repo{}
}

func (g *Repo) open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}

// IsGitRepo reports whether projectPath is inside a git working tree.
func (g *Repo) IsGitRepo(projectPath string) bool {
	_, err := g.open(projectPath)
	return err == nil
}

func (g *Repo) CommitHash(projectPath string) (string, error) {
	repo, err := g.open(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
