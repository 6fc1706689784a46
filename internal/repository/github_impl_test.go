package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/compozy/gitworkflow/internal/domain"
	"github.com/google/go-github/v74/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGithubRepository(t *testing.T, mux *http.ServeMux) *githubRepository {
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	return newGithubRepository(client, "octo", "widget", nil)
}

func TestNewGithubRepository(t *testing.T) {
	t.Run("Should reject missing token", func(t *testing.T) {
		_, err := NewGithubRepository(&domain.Credentials{}, "octo", "widget", nil)
		assert.ErrorContains(t, err, "invalid GitHub credentials")
	})
	t.Run("Should reject invalid owner", func(t *testing.T) {
		_, err := NewGithubRepository(&domain.Credentials{Token: "abc"}, "-bad-", "widget", nil)
		assert.ErrorContains(t, err, "invalid repository configuration")
	})
	t.Run("Should build a client for valid input", func(t *testing.T) {
		repo, err := NewGithubRepository(&domain.Credentials{Token: "abc"}, "octo", "widget", nil)
		require.NoError(t, err)
		assert.NotNil(t, repo)
	})
}

func TestGithubRepository_CreatePullRequest(t *testing.T) {
	mux := http.NewServeMux()
	var received map[string]string
	mux.HandleFunc("/repos/octo/widget/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number": 42, "html_url": "https://github.com/octo/widget/pull/42"}`))
	})
	repo := newTestGithubRepository(t, mux)
	ref, err := repo.CreatePullRequest(context.Background(), domain.PullRequest{
		Title: "Add login",
		Body:  "Body",
		Head:  "feature/login",
		Base:  "master",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, ref.Number)
	assert.Equal(t, "https://github.com/octo/widget/pull/42", ref.URL)
	assert.Equal(t, "feature/login", received["head"])
	assert.Equal(t, "master", received["base"])
}

func TestGithubRepository_RequestReviewers(t *testing.T) {
	t.Run("Should send the reviewer handles", func(t *testing.T) {
		mux := http.NewServeMux()
		var received struct {
			Reviewers []string `json:"reviewers"`
		}
		mux.HandleFunc("/repos/octo/widget/pulls/42/requested_reviewers", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"number": 42}`))
		})
		repo := newTestGithubRepository(t, mux)
		require.NoError(t, repo.RequestReviewers(context.Background(), 42, []string{"maia", "octocat"}))
		assert.Equal(t, []string{"maia", "octocat"}, received.Reviewers)
	})
	t.Run("Should skip the call without reviewers", func(t *testing.T) {
		repo := newTestGithubRepository(t, http.NewServeMux())
		assert.NoError(t, repo.RequestReviewers(context.Background(), 42, nil))
	})
	t.Run("Should wrap API errors", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/octo/widget/pulls/7/requested_reviewers", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message": "Reviews may only be requested from collaborators."}`))
		})
		repo := newTestGithubRepository(t, mux)
		err := repo.RequestReviewers(context.Background(), 7, []string{"stranger"})
		assert.ErrorContains(t, err, "failed to request reviewers on PR #7")
	})
}

func TestGithubRepository_AuthenticatedUser(t *testing.T) {
	t.Run("Should return the token owner", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"login": "octocat"}`))
		})
		login, err := newTestGithubRepository(t, mux).AuthenticatedUser(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "octocat", login)
	})
	t.Run("Should wrap authentication failures", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
		})
		_, err := newTestGithubRepository(t, mux).AuthenticatedUser(context.Background())
		assert.ErrorContains(t, err, "failed to get authenticated user")
	})
	t.Run("Should reject an empty token up front", func(t *testing.T) {
		_, err := NewGithubAccountRepository(&domain.Credentials{}, nil)
		assert.Error(t, err)
	})
}
