package domain

// PullRequest describes a pull request to open on GitHub.
type PullRequest struct {
	Title     string
	Body      string
	Head      string
	Base      string
	Reviewers []string
}

// PullRequestRef identifies a pull request once GitHub created it.
type PullRequestRef struct {
	Number int
	URL    string
}
