package hosting

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v66/github"

	"github.com/colonyops/lado/internal/core/review"
)

const perPage = 100

// API implements Client with the GitHub REST API.
type API struct {
	client *gh.Client
	owner  string
	repo   string
}

// NewAPI wraps an existing go-github client for owner/repo.
func NewAPI(client *gh.Client, owner, repo string) *API {
	return &API{client: client, owner: owner, repo: repo}
}

// NewAPIFromToken creates a REST client. An empty baseURL targets
// api.github.com; an empty token makes unauthenticated requests.
func NewAPIFromToken(baseURL, token, owner, repo string) (*API, error) {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configure api url %q: %w", baseURL, err)
		}
	}
	return NewAPI(client, owner, repo), nil
}

func (a *API) ChangeRequestInfo(ctx context.Context, number int) (review.ChangeRequestInfo, error) {
	pr, _, err := a.client.PullRequests.Get(ctx, a.owner, a.repo, number)
	if err != nil {
		return review.ChangeRequestInfo{}, fmt.Errorf("get pull request #%d: %w: %w", number, ErrRequestFailed, err)
	}

	return review.ChangeRequestInfo{
		Number:  number,
		BaseRef: pr.GetBase().GetRef(),
		HeadRef: pr.GetHead().GetRef(),
		Title:   pr.GetTitle(),
	}, nil
}

func (a *API) Commits(ctx context.Context, number int) ([]review.Commit, error) {
	var commits []review.Commit
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		page, resp, err := a.client.PullRequests.ListCommits(ctx, a.owner, a.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list commits of #%d: %w: %w", number, ErrRequestFailed, err)
		}

		for _, c := range page {
			parent := ""
			if len(c.Parents) > 0 {
				parent = c.Parents[0].GetSHA()
			}
			commits = append(commits, review.NewCommit(
				c.GetSHA(),
				parent,
				c.GetCommit().GetMessage(),
				c.GetCommit().GetAuthor().GetName(),
			))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

func (a *API) ReviewComments(ctx context.Context, number int) ([]review.Comment, error) {
	var comments []review.Comment
	opts := &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		page, resp, err := a.client.PullRequests.ListComments(ctx, a.owner, a.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list comments of #%d: %w: %w", number, ErrRequestFailed, err)
		}

		for _, c := range page {
			comments = append(comments, review.Comment{
				ID:                c.GetID(),
				InReplyTo:         c.GetInReplyTo(),
				Path:              c.GetPath(),
				Line:              c.GetLine(),
				Side:              review.ParseSide(c.GetSide()),
				Body:              c.GetBody(),
				Author:            c.GetUser().GetLogin(),
				CreatedAt:         c.GetCreatedAt().Time,
				CommitSHA:         c.GetCommitID(),
				OriginalCommitSHA: c.GetOriginalCommitID(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}
