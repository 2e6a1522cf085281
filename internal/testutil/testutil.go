// Package testutil provides test utilities and helpers for the scifi-stories-go tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robertguss/scifi-stories-go/internal/api"
	"github.com/robertguss/scifi-stories-go/internal/config"
	"github.com/robertguss/scifi-stories-go/internal/domain"
)

// NewTestConfig creates a Config pointing at baseURL with logging into a
// temp directory and the starfield disabled, so rendered output is stable.
func NewTestConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.APIBaseURL = baseURL
	cfg.RequestTimeout = 5 * time.Second
	cfg.StarfieldEnabled = false
	cfg.LogFile = filepath.Join(CreateTempDir(t), "test.log")
	cfg.LogLevel = "debug"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return cfg
}

// NewTestServer starts the fixture API server with the embedded collection.
// The server is closed when the test completes.
func NewTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	stories, err := api.DefaultStories()
	if err != nil {
		t.Fatalf("failed to load default stories: %v", err)
	}
	return NewTestServerWithStories(t, stories)
}

// NewTestServerWithStories starts the fixture API server serving stories
func NewTestServerWithStories(t *testing.T, stories []domain.Story) *httptest.Server {
	t.Helper()

	srv := api.NewServer(stories, api.Options{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// NewFailingServer starts a server answering every request with status
func NewFailingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(status), status)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// CreateTempDir creates a temporary directory for testing.
// The directory is automatically removed when the test completes.
func CreateTempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "scifi-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	return dir
}

// CreateTempFileInDir creates a file with given content in the specified directory.
func CreateTempFileInDir(t *testing.T, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}

	return path
}

// CreateTestStory creates a Story for testing with the given id and status.
func CreateTestStory(id string, status domain.StoryStatus) domain.Story {
	return domain.Story{
		ID:          id,
		Title:       "Test Story: " + id,
		Description: "A story used in tests",
		Status:      status,
		Image:       domain.StringImage("covers/" + id + ".png"),
	}
}

// CreateTestStories creates n stories with ids s0..s(n-1), cycling statuses
func CreateTestStories(n int) []domain.Story {
	statuses := []domain.StoryStatus{domain.StatusNew, domain.StatusInProgress, domain.StatusPublished}
	stories := make([]domain.Story, n)
	for i := range stories {
		stories[i] = CreateTestStory(fmt.Sprintf("s%d", i), statuses[i%len(statuses)])
	}
	return stories
}

// ThemeYAML returns a custom theme overriding the primary color
func ThemeYAML(name, primary string) string {
	return fmt.Sprintf("name: %s\nbase: nord\nprimary: %q\n", name, primary)
}
