// Package update asks GitHub whether a newer release exists.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const LatestURL = "https://api.github.com/repos/roffe/txgauge/releases/latest"

type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

type Checker struct {
	URL    string
	Client *http.Client
}

func New() *Checker {
	return &Checker{URL: LatestURL, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release check: %s", resp.Status)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	latest := new(Release)
	if err := json.Unmarshal(b, latest); err != nil {
		return nil, err
	}
	return latest, nil
}

// Canonical prefixes a v so plain "1.2.3" versions compare as semver.
func Canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// IsNewer reports whether latest is a valid version above current.
func IsNewer(current, latest string) bool {
	l := Canonical(latest)
	if l == "" {
		return false
	}
	return semver.Compare(l, Canonical(current)) > 0
}

// Check returns the latest release when it is newer than current, or nil.
func (c *Checker) Check(ctx context.Context, current string) (*Release, error) {
	latest, err := c.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest.Prerelease || !IsNewer(current, latest.TagName) {
		return nil, nil
	}
	return latest, nil
}
