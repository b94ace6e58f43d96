// ABOUTME: Sink that upserts the artifact as a file in a GitHub repository
// ABOUTME: Uses the contents API: update with the prior SHA when the file exists, create otherwise

package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v68/github"

	apperrors "linkfeed-aggregator/core/errors"
)

const (
	sinkName = "github"

	DefaultBranch        = "main"
	DefaultUpdateMessage = "Update subscription links"
	DefaultCreateMessage = "Create subscription links file"
)

// Config describes where the artifact lives
type Config struct {
	Token string

	// Repository is "owner/repo"
	Repository string

	Path   string
	Branch string

	UpdateMessage string
	CreateMessage string
}

// Sink writes the artifact through the GitHub contents API
type Sink struct {
	client *gh.Client
	owner  string
	repo   string
	cfg    Config
}

// NewSink creates a sink authenticated with cfg.Token
func NewSink(cfg Config) (*Sink, error) {
	if cfg.Token == "" {
		return nil, &apperrors.ConfigError{Field: "MY_GITHUB_TOKEN", Message: "token is required for the github sink"}
	}
	return NewSinkWithClient(gh.NewClient(nil).WithAuthToken(cfg.Token), cfg)
}

// NewSinkWithClient creates a sink around an existing client
func NewSinkWithClient(client *gh.Client, cfg Config) (*Sink, error) {
	owner, repo, ok := strings.Cut(cfg.Repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, &apperrors.ConfigError{Field: "REPO_NAME", Message: fmt.Sprintf("expected owner/repo, got %q", cfg.Repository)}
	}
	if cfg.Path == "" {
		return nil, &apperrors.ConfigError{Field: "FILE_PATH", Message: "path is required for the github sink"}
	}

	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.UpdateMessage == "" {
		cfg.UpdateMessage = DefaultUpdateMessage
	}
	if cfg.CreateMessage == "" {
		cfg.CreateMessage = DefaultCreateMessage
	}

	return &Sink{
		client: client,
		owner:  owner,
		repo:   repo,
		cfg:    cfg,
	}, nil
}

// Name implements interfaces.Sink
func (s *Sink) Name() string {
	return sinkName
}

// Publish implements interfaces.Sink
func (s *Sink) Publish(ctx context.Context, content string) error {
	sha, exists, err := s.currentSHA(ctx)
	if err != nil {
		return s.wrap(err)
	}

	opts := &gh.RepositoryContentFileOptions{
		Content: []byte(content),
		Branch:  gh.Ptr(s.cfg.Branch),
	}

	if exists {
		opts.Message = gh.Ptr(s.cfg.UpdateMessage)
		opts.SHA = gh.Ptr(sha)
		_, _, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, s.cfg.Path, opts)
	} else {
		opts.Message = gh.Ptr(s.cfg.CreateMessage)
		_, _, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, s.cfg.Path, opts)
	}
	if err != nil {
		return s.wrap(err)
	}

	return nil
}

// currentSHA reports the blob SHA of the existing file; a 404 means the file is absent
func (s *Sink) currentSHA(ctx context.Context) (string, bool, error) {
	file, _, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, s.cfg.Path,
		&gh.RepositoryContentGetOptions{Ref: s.cfg.Branch})
	if err != nil {
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return "", false, nil
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	if file == nil {
		return "", false, fmt.Errorf("%s is a directory", s.cfg.Path)
	}

	return file.GetSHA(), true, nil
}

func (s *Sink) wrap(err error) error {
	return &apperrors.SinkError{
		Sink:   sinkName,
		Target: fmt.Sprintf("%s/%s:%s@%s", s.owner, s.repo, s.cfg.Path, s.cfg.Branch),
		Err:    err,
	}
}
