package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/driftware/reef/internal/model"
)

// ListStorefronts fetches the shop's storefronts. The result reflects
// current remote state; nothing is cached.
func (c *Client) ListStorefronts(ctx context.Context) ([]model.Storefront, error) {
	var out struct {
		Storefronts []model.Storefront `json:"storefronts"`
	}
	path := "/shops/" + c.session.Shop + "/storefronts"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list storefronts for %s: %w", c.session.Shop, err)
	}
	return out.Storefronts, nil
}

// CreateStorefront creates a new storefront with the given title.
// An empty job ID means the platform scheduled no provisioning work.
func (c *Client) CreateStorefront(ctx context.Context, title string) (*model.Storefront, string, error) {
	body := map[string]string{"title": title}
	var out model.CreateJob
	path := "/shops/" + c.session.Shop + "/storefronts"
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, "", fmt.Errorf("failed to create storefront %q: %w", title, err)
	}
	return &out.Storefront, out.JobID, nil
}

// jobResponse is the JSON shape of job status responses.
type jobResponse struct {
	Status model.JobStatus `json:"status"`
	Error  string          `json:"error"`
}

// WaitForJob polls the job until it reaches a terminal status.
// It returns an error if the job failed or the context is cancelled.
func (c *Client) WaitForJob(ctx context.Context, jobID string) error {
	path := "/shops/" + c.session.Shop + "/jobs/" + url.PathEscape(jobID)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var job jobResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &job); err != nil {
			return fmt.Errorf("failed to poll job %s: %w", jobID, err)
		}

		switch job.Status {
		case model.JobStatusCompleted:
			return nil
		case model.JobStatusFailed:
			if job.Error != "" {
				return fmt.Errorf("job %s failed: %s", jobID, job.Error)
			}
			return fmt.Errorf("job %s failed", jobID)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("gave up waiting for job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// DownloadTemplate streams the named project template as a gzipped tarball.
// The caller must close the returned reader.
func (c *Client) DownloadTemplate(ctx context.Context, name string) (io.ReadCloser, error) {
	body, err := c.stream(ctx, "/templates/"+url.PathEscape(name)+"/tarball")
	if err != nil {
		return nil, fmt.Errorf("failed to download template %q: %w", name, err)
	}
	return body, nil
}
