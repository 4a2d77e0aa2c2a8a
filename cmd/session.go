package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/git-log-pretty/cli"
	"github.com/grovetools/git-log-pretty/config"
	"github.com/grovetools/git-log-pretty/conventional"
	"github.com/grovetools/git-log-pretty/display"
	"github.com/grovetools/git-log-pretty/errors"
	"github.com/grovetools/git-log-pretty/git"
	"github.com/grovetools/git-log-pretty/logging"
	"github.com/grovetools/git-log-pretty/pkg/profiling"
	"github.com/grovetools/git-log-pretty/tree"
	"github.com/grovetools/git-log-pretty/tui/pager"
	"github.com/grovetools/git-log-pretty/tui/theme"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// watchDebounce groups the burst of ref writes a single git command makes.
const watchDebounce = 200 * time.Millisecond

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// renderFunc writes one complete view to w.
type renderFunc func(ctx context.Context, w io.Writer) error

// session holds everything one command invocation resolves up front:
// configuration, repository, theme and the derived renderers.
type session struct {
	opts    cli.CommandOptions
	cfg     *config.Config
	repo    *git.Repository
	theme   *theme.Theme
	trees   *tree.Renderer
	filter  *tree.Filter
	pattern *regexp.Regexp
	logger  *logrus.Entry
	notices *logging.PrettyLogger
	timings *profiling.Recorder
	out     io.Writer
	watch   bool
	paged   bool
}

// newSession loads configuration from the working directory, opens the
// repository containing it and resolves theme, icons, excludes and the
// commit pattern. Phases are timed into timings.
func newSession(cmd *cobra.Command, timings *profiling.Recorder) (*session, error) {
	opts := cli.GetOptions(cmd)
	logger := cli.GetLogger(cmd)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to get current directory")
	}

	stop := timings.Start("load config")
	cfg, err := cli.LoadConfig(cmd, workDir)
	stop()
	if err != nil {
		return nil, err
	}

	stop = timings.Start("open repository")
	repo, err := git.Open(workDir)
	stop()
	if err != nil {
		return nil, err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	paged, _ := cmd.Flags().GetBool("pager")
	out := cmd.OutOrStdout()

	mode, probed := theme.ResolveMode(cfg.Theme, theme.NewTerminalProber(os.Stdout))
	logger.WithFields(logrus.Fields{"mode": mode.String(), "probed": probed}).Debug("Resolved theme")

	th := theme.New(mode, theme.WithRenderer(rendererFor(out, paged && !opts.JSONOutput)))
	notices := logging.NewPrettyLogger().
		WithWriter(cmd.ErrOrStderr()).
		WithStyles(logging.PrettyStyles{
			Success: th.Success,
			Info:    th.Muted,
			Warning: th.Warning,
			Error:   th.Error,
		})
	if paged && opts.JSONOutput {
		notices.WarnPretty("--pager is ignored with --json")
	}

	style, ok := theme.ParseIconStyle(cfg.Icons)
	if !ok {
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown icon style %q", cfg.Icons))
	}

	filter, err := tree.NewFilter(cfg.Exclude)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid exclude pattern")
	}

	pattern, err := conventional.Compile(cfg.CommitPattern)
	if err != nil {
		return nil, err
	}

	return &session{
		opts:    opts,
		cfg:     cfg,
		repo:    repo,
		theme:   th,
		trees:   tree.NewRenderer(th, theme.NewIconSet(style, mode)),
		filter:  filter,
		pattern: pattern,
		logger:  logger,
		notices: notices,
		timings: timings,
		out:     out,
		watch:   watch,
		paged:   paged && !opts.JSONOutput,
	}, nil
}

// rendererFor picks the lipgloss renderer whose color profile matches
// where the output ends up. Paged output is shown on stdout even though it
// is rendered into a buffer first.
func rendererFor(out io.Writer, paged bool) *lipgloss.Renderer {
	if paged || out == os.Stdout {
		return lipgloss.DefaultRenderer()
	}
	return lipgloss.NewRenderer(out)
}

func (s *session) printer(w io.Writer) *display.Printer {
	return display.NewPrinter(w, s.theme, s.trees, s.pattern)
}

// present renders once, or keeps re-rendering on ref changes with --watch,
// either inline or inside the pager.
func (s *session) present(ctx context.Context, title string, render renderFunc) error {
	if s.watch {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	if s.paged {
		return s.presentPaged(ctx, title, render)
	}

	if !s.watch {
		return render(ctx, s.out)
	}

	interactive := s.out == os.Stdout && isatty.IsTerminal(os.Stdout.Fd())
	draw := func() error {
		// Render into a buffer so a slow walk does not leave a half-cleared screen.
		var buf bytes.Buffer
		if err := render(ctx, &buf); err != nil {
			return err
		}
		if interactive && !s.opts.JSONOutput {
			io.WriteString(s.out, clearScreen)
		}
		_, err := s.out.Write(buf.Bytes())
		return err
	}

	if err := draw(); err != nil {
		return err
	}

	s.notices.InfoPretty(fmt.Sprintf("Watching %s for ref changes (Ctrl+C to stop)", s.repo.GitDir()))

	return s.watchRefs(ctx, func() {
		if err := draw(); err != nil {
			s.notices.ErrorPretty("Refresh failed", err)
			return
		}
		s.notices.Success("Refreshed at " + time.Now().Format("15:04:05"))
	})
}

func (s *session) presentPaged(ctx context.Context, title string, render renderFunc) error {
	var buf bytes.Buffer
	if err := render(ctx, &buf); err != nil {
		return err
	}

	// Quitting the pager stops the watcher.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var updates chan string
	if s.watch {
		updates = make(chan string, 1)
		go func() {
			defer close(updates)
			err := s.watchRefs(ctx, func() {
				var next bytes.Buffer
				if err := render(ctx, &next); err != nil {
					s.logger.WithError(err).Warn("Refresh failed")
					return
				}
				select {
				case updates <- next.String():
				case <-ctx.Done():
				}
			})
			if err != nil {
				s.logger.WithError(err).Warn("Ref watcher stopped")
			}
		}()
	}

	return pager.Run(ctx, pager.New(title, buf.String(), s.theme), updates)
}

// watchRefs calls onChange after every settled ref update until ctx ends.
func (s *session) watchRefs(ctx context.Context, onChange func()) error {
	watcher, err := git.NewWatcher(s.repo.GitDir(), watchDebounce)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to watch repository").
			WithDetail("gitDir", s.repo.GitDir())
	}
	return watcher.Run(ctx, onChange)
}
