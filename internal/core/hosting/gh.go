package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/colonyops/lado/internal/core/review"
	"github.com/colonyops/lado/pkg/executil"
)

// GH implements Client with the gh command-line tool.
type GH struct {
	ghPath string
	dir    string
	exec   executil.Executor
}

// NewGH creates a gh client that runs inside dir so gh can infer the repository.
func NewGH(ghPath, dir string, exec executil.Executor) *GH {
	return &GH{ghPath: ghPath, dir: dir, exec: exec}
}

type ghPRView struct {
	BaseRefName string `json:"baseRefName"`
	HeadRefName string `json:"headRefName"`
	Title       string `json:"title"`
}

type ghUser struct {
	Login string `json:"login"`
}

type ghComment struct {
	ID               int64     `json:"id"`
	InReplyToID      int64     `json:"in_reply_to_id"`
	Path             string    `json:"path"`
	Line             *int      `json:"line"`
	Side             string    `json:"side"`
	Body             string    `json:"body"`
	User             ghUser    `json:"user"`
	CreatedAt        time.Time `json:"created_at"`
	CommitID         string    `json:"commit_id"`
	OriginalCommitID string    `json:"original_commit_id"`
}

type ghCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"commit"`
	Parents []struct {
		SHA string `json:"sha"`
	} `json:"parents"`
}

func (g *GH) run(ctx context.Context, args ...string) ([]byte, error) {
	out, err := g.exec.RunDir(ctx, g.dir, g.ghPath, args...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", g.ghPath, args[0], ErrRequestFailed, err)
	}
	return out, nil
}

func (g *GH) ChangeRequestInfo(ctx context.Context, number int) (review.ChangeRequestInfo, error) {
	out, err := g.run(ctx, "pr", "view", strconv.Itoa(number), "--json", "baseRefName,headRefName,title")
	if err != nil {
		return review.ChangeRequestInfo{}, err
	}

	var view ghPRView
	if err := json.Unmarshal(out, &view); err != nil {
		return review.ChangeRequestInfo{}, fmt.Errorf("%w: decode pr view: %w", ErrRequestFailed, err)
	}
	if view.BaseRefName == "" || view.HeadRefName == "" {
		return review.ChangeRequestInfo{}, fmt.Errorf("%w: pr #%d is missing base or head ref", ErrRequestFailed, number)
	}

	return review.ChangeRequestInfo{
		Number:  number,
		BaseRef: view.BaseRefName,
		HeadRef: view.HeadRefName,
		Title:   view.Title,
	}, nil
}

func (g *GH) ReviewComments(ctx context.Context, number int) ([]review.Comment, error) {
	out, err := g.run(ctx, "api", "repos/{owner}/{repo}/pulls/"+strconv.Itoa(number)+"/comments", "--paginate")
	if err != nil {
		return nil, err
	}

	raw, err := decodePages[ghComment](out)
	if err != nil {
		return nil, fmt.Errorf("%w: decode comments: %w", ErrRequestFailed, err)
	}

	comments := make([]review.Comment, 0, len(raw))
	for _, c := range raw {
		line := 0
		if c.Line != nil {
			line = *c.Line
		}
		comments = append(comments, review.Comment{
			ID:                c.ID,
			InReplyTo:         c.InReplyToID,
			Path:              c.Path,
			Line:              line,
			Side:              review.ParseSide(c.Side),
			Body:              c.Body,
			Author:            c.User.Login,
			CreatedAt:         c.CreatedAt,
			CommitSHA:         c.CommitID,
			OriginalCommitSHA: c.OriginalCommitID,
		})
	}
	return comments, nil
}

func (g *GH) Commits(ctx context.Context, number int) ([]review.Commit, error) {
	out, err := g.run(ctx, "api", "repos/{owner}/{repo}/pulls/"+strconv.Itoa(number)+"/commits", "--paginate")
	if err != nil {
		return nil, err
	}

	raw, err := decodePages[ghCommit](out)
	if err != nil {
		return nil, fmt.Errorf("%w: decode commits: %w", ErrRequestFailed, err)
	}

	commits := make([]review.Commit, 0, len(raw))
	for _, c := range raw {
		parent := ""
		if len(c.Parents) > 0 {
			parent = c.Parents[0].SHA
		}
		commits = append(commits, review.NewCommit(c.SHA, parent, c.Commit.Message, c.Commit.Author.Name))
	}
	return commits, nil
}

// decodePages decodes `gh api --paginate` output, which concatenates one JSON
// array per page.
func decodePages[T any](data []byte) ([]T, error) {
	var out []T
	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		var page []T
		err := dec.Decode(&page)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
	}
}
