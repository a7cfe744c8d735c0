package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/internal/gallery"
	"github.com/andreyxaxa/Photo-Gallery/internal/infrastructure/galleryapi"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	_defaultServer  = "http://localhost:8080"
	_defaultTimeout = 30 * time.Second

	_envPrefix = "GALLERY"
)

// ErrReported marks failures the user has already been told about.
var ErrReported = errors.New("reported")

type Config struct {
	Server    string
	Timeout   time.Duration
	AssumeYes bool
	Verbose   bool
}

// NewRootCommand builds the gallery CLI. Flags can also be set through
// GALLERY_* environment variables (GALLERY_SERVER, GALLERY_TIMEOUT, GALLERY_YES).
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(_envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "gallery",
		Short:         "Browse, upload and delete photos of a gallery server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("server", _defaultServer, "gallery server base URL")
	flags.Duration("timeout", _defaultTimeout, "timeout of every request")
	flags.BoolP("yes", "y", false, "do not ask for confirmation")
	flags.BoolP("verbose", "v", false, "log to stderr")
	_ = v.BindPFlags(flags)

	cfg := func() Config {
		return Config{
			Server:    v.GetString("server"),
			Timeout:   v.GetDuration("timeout"),
			AssumeYes: v.GetBool("yes"),
			Verbose:   v.GetBool("verbose"),
		}
	}

	root.AddCommand(
		newListCommand(cfg),
		newWatchCommand(cfg),
		newBrowseCommand(cfg),
		newDeleteCommand(cfg),
		newDeleteManyCommand(cfg),
		newUploadCommand(cfg),
	)

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	root := NewRootCommand()

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if !errors.Is(err, ErrReported) {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
	}

	return 1
}

// session wires the server client into the gallery engine for one command.
type session struct {
	cfg     Config
	out     io.Writer
	logger  logger.Interface
	client  *galleryapi.Client
	prompt  *Prompter
	changes chan struct{}
}

func newSession(cmd *cobra.Command, cfg Config) (*session, error) {
	l := logger.Interface(logger.Nop())
	if cfg.Verbose {
		l = logger.NewWithWriter("debug", cmd.ErrOrStderr())
	}

	client, err := galleryapi.New(cfg.Server, galleryapi.Timeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("cli - newSession - galleryapi.New: %w", err)
	}

	return &session{
		cfg:     cfg,
		out:     cmd.OutOrStdout(),
		logger:  l,
		client:  client,
		prompt:  NewPrompter(cmd.ErrOrStderr(), cfg.AssumeYes),
		changes: make(chan struct{}, 1),
	}, nil
}

func (s *session) engine(opts ...gallery.Option) *gallery.Engine {
	opts = append(opts,
		gallery.Logger(s.logger),
		gallery.OnChange(func() {
			select {
			case s.changes <- struct{}{}:
			default:
			}
		}),
	)

	return gallery.New(s.client, s.client, s.client, s.prompt, opts...)
}

// waitLoaded blocks until the first snapshot or the subscription failure.
func (s *session) waitLoaded(ctx context.Context, e *gallery.Engine) error {
	for e.Loading() {
		select {
		case <-s.changes:
		case <-e.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := e.Err(); err != nil {
		return fmt.Errorf("cli - waitLoaded: %w", err)
	}

	return nil
}

// start activates the engine and waits for the first snapshot. The returned
// stop func must be called.
func (s *session) start(ctx context.Context, opts ...gallery.Option) (*gallery.Engine, func(), error) {
	e := s.engine(opts...)

	err := e.Activate(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err = s.waitLoaded(ctx, e); err != nil {
		e.Deactivate()

		return nil, nil, err
	}

	return e, e.Deactivate, nil
}

type viewFlags struct {
	search string
	sort   string
	view   string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "keep photos whose title or description contains this")
	cmd.Flags().StringVar(&f.sort, "sort", string(entity.SortNewest), "newest, oldest, name or size")
	cmd.Flags().StringVar(&f.view, "view", string(entity.ViewGrid), "grid or list")
}

func (f *viewFlags) options() ([]gallery.Option, error) {
	key, err := entity.ParseSortKey(f.sort)
	if err != nil {
		return nil, err
	}

	mode, err := entity.ParseViewMode(f.view)
	if err != nil {
		return nil, err
	}

	return []gallery.Option{gallery.Search(f.search), gallery.Sort(key), gallery.View(mode)}, nil
}
