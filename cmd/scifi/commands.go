package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/sync/errgroup"

	"github.com/robertguss/scifi-stories-go/internal/api"
	"github.com/robertguss/scifi-stories-go/internal/client"
	"github.com/robertguss/scifi-stories-go/internal/collection"
	"github.com/robertguss/scifi-stories-go/internal/config"
	"github.com/robertguss/scifi-stories-go/internal/domain"
	"github.com/robertguss/scifi-stories-go/internal/imageurl"
	"github.com/robertguss/scifi-stories-go/internal/logging"
	"github.com/robertguss/scifi-stories-go/internal/util"
	"github.com/robertguss/scifi-stories-go/internal/watcher"
)

// CLI runs the headless commands against a story repository
type CLI struct {
	Repo     client.Repository
	Out      io.Writer
	Logger   *slog.Logger
	PageSize int
}

// ListOptions selects the page printed by List
type ListOptions struct {
	Search string
	Status domain.StatusFilter
	Page   int
}

// List prints one page of the filtered collection
func (c *CLI) List(ctx context.Context, opts ListOptions) error {
	stories, err := c.Repo.FetchAll(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrFormat) {
			return fmt.Errorf("failed to list stories: %w", err)
		}
		c.logger().Warn("story list had unexpected format, treating as empty", "err", err)
		stories = nil
	}

	filtered := collection.Filter(stories, collection.FilterState{Search: opts.Search, Status: opts.Status})
	page := collection.Paginate(filtered, collection.PageState{Size: c.pageSize(), Current: opts.Page})

	if len(page.Items) == 0 {
		fmt.Fprintln(c.Out, "No stories match the current filters")
	} else {
		offset := (page.CurrentPage - 1) * c.pageSize()
		rows := make([][]string, 0, len(page.Items))
		for i, s := range page.Items {
			title := s.Title
			if strings.TrimSpace(title) == "" {
				title = domain.DefaultCardTitle
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", offset+i+1),
				s.ID,
				util.Truncate(title, 32),
				strings.ToUpper(string(s.EffectiveStatus())),
				imageurl.Resolve(s.Image.Value(), imageurl.CardPlaceholder),
			})
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "ID", "TITLE", "STATUS", "IMAGE").
			Rows(rows...)
		fmt.Fprintln(c.Out, t.String())
	}

	fmt.Fprintf(c.Out, "Page %d of %d · %s\n",
		page.CurrentPage, max(page.TotalPages, 1), util.Pluralize(page.Total, "story", "stories"))
	return nil
}

// Show prints a story and its previous and next neighbours. The story and
// the collection are fetched concurrently; a failed collection fetch only
// drops the neighbours.
func (c *CLI) Show(ctx context.Context, id string) error {
	start := time.Now()

	var (
		story   domain.Story
		stories []domain.Story
		listErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.Repo.FetchOne(gctx, id)
		if err != nil {
			return err
		}
		story = s
		return nil
	})
	g.Go(func() error {
		stories, listErr = c.Repo.FetchAll(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("story %q not found", id)
		}
		return fmt.Errorf("failed to fetch story: %w", err)
	}
	if listErr != nil {
		c.logger().Warn("failed to fetch stories for navigation", "kind", client.Kind(listErr), "err", listErr)
		stories = nil
	}

	title := story.Title
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultDetailTitle
	}
	desc := story.Description
	if strings.TrimSpace(desc) == "" {
		desc = domain.DefaultDescription
	}

	w := c.Out
	fmt.Fprintln(w, title)
	if adv := story.AdventureTitle(); adv != "" {
		fmt.Fprintln(w, adv)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Status:  %s\n", strings.ToUpper(string(story.EffectiveStatus())))
	fmt.Fprintf(w, "Image:   %s\n", imageurl.Resolve(story.Image.Value(), imageurl.DetailPlaceholder))
	fmt.Fprintln(w)
	fmt.Fprintln(w, desc)
	fmt.Fprintln(w)

	name, bio := domain.DefaultAuthorName, domain.DefaultAuthorBio
	if a := story.Author; a != nil {
		if strings.TrimSpace(a.Name) != "" {
			name = a.Name
		}
		if strings.TrimSpace(a.Bio) != "" {
			bio = a.Bio
		}
	}
	fmt.Fprintf(w, "Author:  %s (%s)\n", name, util.Pluralize(story.Author.PublicationsCount(), "publication", "publications"))
	fmt.Fprintf(w, "Rating:  %s\n", util.FormatRating(story.Author.RatingValue()))
	fmt.Fprintf(w, "Bio:     %s\n", bio)
	fmt.Fprintln(w)

	n := collection.FindNeighbors(stories, id)
	fmt.Fprintf(w, "Previous: %s\n", neighborLabel(n.Previous))
	fmt.Fprintf(w, "Next:     %s\n", neighborLabel(n.Next))

	c.logger().Debug("show finished", "story_id", id, "elapsed", util.FormatDurationCompact(time.Since(start)))
	return nil
}

func neighborLabel(s *domain.Story) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", s.Title, s.ID)
}

func (c *CLI) pageSize() int {
	if c.PageSize <= 0 {
		return collection.DefaultPageSize
	}
	return c.PageSize
}

func (c *CLI) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}

// headless builds a CLI whose diagnostics go to stderr
func headless(cfg *config.Config, stdout, stderr io.Writer) *CLI {
	logger := logging.NewWriter(stderr, "warn")
	return &CLI{
		Repo:     client.NewFromConfig(cfg, logger),
		Out:      stdout,
		Logger:   logger,
		PageSize: cfg.PageSize,
	}
}

func runList(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	search := fs.String("search", "", "match title or description")
	status := fs.String("status", "all", "all, new, inProgress or completed")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter, ok := domain.ParseStatusFilter(*status)
	if !ok {
		return fmt.Errorf("%w: unknown status %q", ErrUsage, *status)
	}

	return headless(cfg, stdout, stderr).List(ctx, ListOptions{Search: *search, Status: filter, Page: *page})
}

func runShow(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: show takes exactly one story id", ErrUsage)
	}

	return headless(cfg, stdout, stderr).Show(ctx, fs.Arg(0))
}

// ServeOptions configures the fixture API server
type ServeOptions struct {
	Addr    string
	Fixture string
	Delay   time.Duration
	Watch   bool
}

func runServe(ctx context.Context, cfg *config.Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := ServeOptions{}
	fs.StringVar(&opts.Addr, "addr", cfg.ServeAddr, "listen address")
	fs.StringVar(&opts.Fixture, "fixture", "", "JSON story array to serve instead of the built-in one")
	fs.DurationVar(&opts.Delay, "delay", 0, "artificial latency added to story endpoints")
	fs.BoolVar(&opts.Watch, "watch", false, "reload the fixture file when it changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.NewWriter(stderr, cfg.LogLevel)
	return Serve(ctx, opts, logger)
}

// senderFunc adapts a function to watcher.Sender
type senderFunc func(tea.Msg)

func (f senderFunc) Send(msg tea.Msg) { f(msg) }

// Serve runs the fixture server until ctx is cancelled
func Serve(ctx context.Context, opts ServeOptions, logger *slog.Logger) error {
	stories, err := api.DefaultStories()
	if opts.Fixture != "" {
		stories, err = api.LoadFixture(opts.Fixture)
	}
	if err != nil {
		return err
	}

	srv := api.NewServer(stories, api.Options{Delay: opts.Delay, Logger: logger})

	if opts.Watch && opts.Fixture != "" {
		w := watcher.New(config.DefaultWatchDebounce, logger.With("component", "watcher"))
		w.AddPath(opts.Fixture)
		w.SetSender(senderFunc(func(msg tea.Msg) {
			switch msg := msg.(type) {
			case watcher.ChangedMsg:
				reloaded, err := api.LoadFixture(msg.Path)
				if err != nil {
					logger.Warn("keeping previous fixture", "path", msg.Path, "err", err)
					return
				}
				srv.SetStories(reloaded)
				logger.Info("fixture reloaded", "path", msg.Path, "stories", len(reloaded))
			case watcher.ErrorMsg:
				logger.Warn("fixture watcher error", "err", msg.Error)
			}
		}))
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to watch fixture: %w", err)
		}
		defer w.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(opts.Addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	return g.Wait()
}
