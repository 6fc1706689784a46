package orchestrator

import (
	"context"
	"errors"
	"net/http"

	"github.com/compozy/gitworkflow/internal/repository"
	"github.com/google/go-github/v74/github"
	"github.com/sethvargo/go-retry"
)

// withRetry runs op with exponential backoff. Errors that another attempt
// cannot fix are returned immediately.
func withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	return retry.Do(
		ctx,
		retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay)),
		func(ctx context.Context) error {
			err := op(ctx)
			if err == nil || isPermanent(err) {
				return err
			}
			return retry.RetryableError(err)
		},
	)
}

func isPermanent(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, repository.ErrNonFastForward) {
		return true
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		status := ghErr.Response.StatusCode
		return status >= http.StatusBadRequest && status < http.StatusInternalServerError &&
			status != http.StatusTooManyRequests
	}
	var rateErr *github.RateLimitError
	return errors.As(err, &rateErr)
}
