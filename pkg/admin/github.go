package admin

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/makeajourney/asnisum/pkg/config"
)

// GitHubClient pushes the catalog file to a repository via the contents
// API, so menu edits survive redeploys of the bot host.
type GitHubClient struct {
	httpClient *http.Client
	baseURL    string
	owner      string
	repo       string
	path       string
	branch     string
}

func NewGitHubClient(ctx context.Context, cfg config.GitHubConfig) *GitHubClient {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	return &GitHubClient{
		httpClient: oauth2.NewClient(ctx, src),
		baseURL:    "https://api.github.com",
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		path:       cfg.Path,
		branch:     cfg.Branch,
	}
}

func (c *GitHubClient) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, c.path)
}

// currentSHA returns the blob SHA of the catalog file, or "" when the
// file does not exist yet.
func (c *GitHubClient) currentSHA(ctx context.Context) (string, error) {
	url := c.contentsURL()
	if c.branch != "" {
		url += "?ref=" + c.branch
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch file metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("fetch file metadata: %s: %s", resp.Status, body)
	}

	var meta struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return "", fmt.Errorf("decode file metadata: %w", err)
	}
	return meta.SHA, nil
}

// UpdateFile commits content to the configured path, creating the file
// if it does not exist.
func (c *GitHubClient) UpdateFile(ctx context.Context, content []byte, message string) error {
	sha, err := c.currentSHA(ctx)
	if err != nil {
		return err
	}

	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if sha != "" {
		payload["sha"] = sha
	}
	if c.branch != "" {
		payload["branch"] = c.branch
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("update file: %s: %s", resp.Status, respBody)
	}
	return nil
}
