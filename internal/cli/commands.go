package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/andreyxaxa/Photo-Gallery/internal/gallery"
	"github.com/andreyxaxa/Photo-Gallery/internal/uploadform"
	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const _probeConcurrency = 8

func newListCommand(cfg func() Config) *cobra.Command {
	var (
		vf    viewFlags
		probe bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the gallery once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := vf.options()
			if err != nil {
				return err
			}

			s, err := newSession(cmd, cfg())
			if err != nil {
				return err
			}

			e, stop, err := s.start(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			defer stop()

			if probe {
				probeImages(cmd.Context(), e, &http.Client{Timeout: s.cfg.Timeout})
			}

			Render(s.out, e)

			return nil
		},
	}

	vf.register(cmd)
	cmd.Flags().BoolVar(&probe, "probe", false, "check every image URL and show a placeholder for broken ones")

	return cmd
}

func newWatchCommand(cfg func() Config) *cobra.Command {
	var vf viewFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep printing the gallery on every change until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := vf.options()
			if err != nil {
				return err
			}

			s, err := newSession(cmd, cfg())
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			e, stop, err := s.start(ctx, opts...)
			if err != nil {
				return err
			}
			defer stop()

			for {
				fmt.Fprint(s.out, "\033[H\033[2J")
				Render(s.out, e)

				select {
				case <-s.changes:
				case <-e.Done():
					Render(s.out, e)

					return e.Err()
				case <-ctx.Done():
					return nil
				}
			}
		},
	}

	vf.register(cmd)

	return cmd
}

const (
	actionNext   = "Next →"
	actionPrev   = "← Previous"
	actionDelete = "Delete"
	actionClose  = "Close"
)

func newBrowseCommand(cfg func() Config) *cobra.Command {
	var (
		vf   viewFlags
		from string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Step through photos one at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := vf.options()
			if err != nil {
				return err
			}

			s, err := newSession(cmd, cfg())
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			e, stop, err := s.start(ctx, opts...)
			if err != nil {
				return err
			}
			defer stop()

			view := e.View()
			if len(view) == 0 {
				Render(s.out, e)

				return nil
			}

			start := view[0].ID
			if from != "" {
				if start, err = uuid.Parse(from); err != nil {
					return fmt.Errorf("invalid id %q: %w", from, err)
				}
			}

			if err = e.OpenModal(start); err != nil {
				return err
			}

			for {
				if _, _, open := e.Modal(); !open {
					return nil
				}
				RenderModal(s.out, e)

				sel := promptui.Select{
					Label:     "Action",
					Items:     []string{actionNext, actionPrev, actionDelete, actionClose},
					HideHelp:  true,
					CursorPos: 0,
				}

				_, action, err := sel.Run()
				if err != nil {
					if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
						return nil
					}

					return err
				}

				switch action {
				case actionNext:
					e.Next()
				case actionPrev:
					e.Prev()
				case actionDelete:
					report, err := e.DeleteCurrent(ctx)
					switch {
					case err != nil && report == nil:
						s.prompt.Alert(err.Error())
					case err == nil && report.Complete():
						fmt.Fprintln(s.out, green(report.Message()))
					}
				case actionClose:
					e.CloseModal()
				}
			}
		},
	}

	vf.register(cmd)
	cmd.Flags().StringVar(&from, "id", "", "open this record first")

	return cmd
}

func newDeleteCommand(cfg func() Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one photo from the image host and the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}

			s, err := newSession(cmd, cfg())
			if err != nil {
				return err
			}

			e, stop, err := s.start(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()

			report, err := e.DeleteOne(cmd.Context(), id)

			return s.finishDelete(report, err)
		},
	}
}

func newDeleteManyCommand(cfg func() Config) *cobra.Command {
	var matching string

	cmd := &cobra.Command{
		Use:   "delete-many [id...]",
		Short: "Delete several photos at once; nothing is removed from the gallery if any image host delete fails",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && matching == "" {
				return errors.New("pass record ids or --matching")
			}

			ids := make(uuid.UUIDs, 0, len(args))
			for _, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid id %q: %w", arg, err)
				}
				ids = append(ids, id)
			}

			s, err := newSession(cmd, cfg())
			if err != nil {
				return err
			}

			e, stop, err := s.start(cmd.Context(), gallery.Search(matching))
			if err != nil {
				return err
			}
			defer stop()

			targets := deleteTargets(e, ids, matching != "")
			if len(targets) == 0 {
				fmt.Fprintln(s.out, gray("Nothing selected."))

				return nil
			}

			report, err := e.DeleteMany(cmd.Context(), targets)

			return s.finishDelete(report, err)
		},
	}

	cmd.Flags().StringVar(&matching, "matching", "", "select every photo whose title or description contains this")

	return cmd
}

// deleteTargets resolves the ids once; a snapshot arriving later clears the
// engine selection but not this list.
func deleteTargets(e *gallery.Engine, ids uuid.UUIDs, matching bool) uuid.UUIDs {
	var targets uuid.UUIDs
	if matching {
		for _, rec := range e.View() {
			targets = append(targets, rec.ID)
		}
	}

	return append(targets, ids...)
}

func (s *session) finishDelete(report *gallery.DeleteReport, err error) error {
	if err != nil {
		// отчет есть - пользователь уже видел алерт
		if report != nil {
			return fmt.Errorf("cli - delete: %w", errors.Join(ErrReported, err))
		}

		return err
	}

	if report.Canceled {
		fmt.Fprintln(s.out, gray("Canceled."))

		return nil
	}

	if len(report.Requested) == 0 {
		fmt.Fprintln(s.out, gray("Nothing to delete."))

		return nil
	}

	fmt.Fprintln(s.out, green(report.Message()))

	return nil
}

func newUploadCommand(cfg func() Config) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "upload <file...>",
		Short: "Upload images and add them to the gallery",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, cfg())
			if err != nil {
				return err
			}

			form := uploadform.New(s.client, s.client, s.logger)

			files := make([]uploadform.File, 0, len(args))
			for _, path := range args {
				f, err := uploadform.ReadFile(path)
				if err != nil {
					s.prompt.Alert(err.Error())

					continue
				}
				files = append(files, f)
			}

			rejected := form.Stage(files...)
			if len(rejected) > 0 {
				lines := make([]string, 0, len(rejected))
				for _, r := range rejected {
					lines = append(lines, r.String())
				}
				s.prompt.Alert(strings.Join(lines, "\n"))
			}

			if len(form.Staged()) == 0 {
				return ErrReported
			}

			for _, staged := range form.Staged() {
				if title != "" {
					_ = form.SetTitle(staged.ID, title)
				}
				_ = form.SetDescription(staged.ID, description)
			}

			res, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}

			if len(res.Failed) > 0 {
				for _, f := range res.Failed {
					fmt.Fprintln(s.out, red(fmt.Sprintf("  %s: %v", f.Name, f.Err)))
				}
			}

			msg := res.Message()
			if len(res.Uploaded) == 0 {
				s.prompt.Alert(msg)

				return ErrReported
			}

			fmt.Fprintln(s.out, green(msg))
			for _, link := range res.Links() {
				fmt.Fprintln(s.out, "  "+cyan(link))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "title of every uploaded image (default: file name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description of every uploaded image")

	return cmd
}

// probeImages marks records whose URL does not answer 2xx in time as broken.
func probeImages(ctx context.Context, e *gallery.Engine, client *http.Client) {
	var g errgroup.Group
	g.SetLimit(_probeConcurrency)

	for _, rec := range e.View() {
		g.Go(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodHead, rec.URL, nil)
			if err != nil {
				e.MarkBroken(rec.ID)

				return nil
			}

			resp, err := client.Do(req)
			if err != nil {
				e.MarkBroken(rec.ID)

				return nil
			}
			resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				e.MarkBroken(rec.ID)
			}

			return nil
		})
	}

	_ = g.Wait()
}
