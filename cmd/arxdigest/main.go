package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pvieira/arxdigest/internal/arxiv"
	"github.com/pvieira/arxdigest/internal/config"
	"github.com/pvieira/arxdigest/internal/fetch"
	"github.com/pvieira/arxdigest/internal/logging"
	"github.com/pvieira/arxdigest/internal/session"
	"github.com/pvieira/arxdigest/internal/storage"
	"github.com/pvieira/arxdigest/internal/tui"
)

func main() {
	root := &cobra.Command{
		Use:           "arxdigest",
		Short:         "Daily arXiv paper digest",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFetchCmd(), newBrowseCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newFetchCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Scrape the configured listing pages and write the digest payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log := logging.New(cfg.LogLevel)

			targetDate := time.Now()
			if dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", dateFlag)
				}
				targetDate = parsed
			}

			extractor := fetch.NewKeywordExtractor(cfg.KeywordAPI, nil, log)
			scanner := fetch.NewScanner(nil, log, extractor)

			payload, err := scanner.BuildPayload(cmd.Context(), cfg.Sources, targetDate, cfg.Preferences)
			if err != nil {
				return err
			}
			if err := arxiv.SavePayload(cfg.PayloadPath, payload); err != nil {
				return err
			}
			log.Info("digest written", "path", cfg.PayloadPath, "sources", len(payload.Sources))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "listing date to fetch (YYYY-MM-DD, defaults to today)")
	return cmd
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the fetched digest in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()

			payload, err := arxiv.LoadPayload(cfg.PayloadPath)
			if err != nil {
				return fmt.Errorf("%w (run 'arxdigest fetch' first)", err)
			}

			repo, err := storage.NewRepository(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("storage: %w", err)
			}
			defer repo.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			if err := repo.Init(ctx); err != nil {
				return fmt.Errorf("storage schema: %w", err)
			}
			if err := repo.CheckWritable(ctx); err != nil {
				return fmt.Errorf("storage write check failed (%w), verify %s is writable", err, cfg.DBPath)
			}

			prefs, ok := repo.LoadPreferences(ctx)
			if !ok {
				prefs = session.NormalizePreferences(
					[]string(payload.Preferences.FavoriteAuthors),
					[]string(payload.Preferences.Keywords),
				)
			}

			model := tui.NewModel(tui.Options{
				Payload:     payload,
				Store:       repo,
				SourceKey:   repo.LoadSelectedSource(ctx),
				Preferences: prefs,
				ReadingList: repo.LoadReadingList(ctx, time.Now()),
				DisplayMode: repo.LoadDisplayMode(ctx),
			})

			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}
