package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pulsedrive/calres/axis"
	"github.com/pulsedrive/calres/caltab"
	"github.com/pulsedrive/calres/config"
	"github.com/pulsedrive/calres/emit"
	"github.com/pulsedrive/calres/ingest"
	"github.com/pulsedrive/calres/watch"
	"gopkg.in/yaml.v3"
)

func resolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the constant table and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(opts)
			if err != nil {
				return err
			}
			ds, _, err := loadDataset(cfg)
			if err != nil {
				return err
			}
			ctx, err := buildContext(cfg, opts)
			if err != nil {
				return err
			}
			tab, err := caltab.Resolve(ds, ctx)
			if err != nil {
				return err
			}
			renderTable(tab)
			pterm.Success.Printf("%d constants resolved for %s\n", tab.Len(), ctx)
			return nil
		},
	}
}

func renderTable(tab *caltab.Table) {
	data := pterm.TableData{{"Name", "Type", "Value", "Unit", "Origin"}}
	for _, name := range tab.Names() {
		b, _ := tab.Get(name)
		value := b.Scalar().String()
		if b.PerTarget {
			parts := make([]string, 0, len(b.Values))
			for _, t := range axis.Targets() {
				parts = append(parts, fmt.Sprintf("%s=%s", t, b.At(t)))
			}
			value = strings.Join(parts, " ")
		}
		origin := b.Origin
		if b.Derived {
			origin = "derived:" + origin
		}
		data = append(data, []string{b.Name, b.Kind.String(), value, b.Unit, origin})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func emitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "emit",
		Short: "Resolve and write the configured output artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			paths, err := resolveAndEmit(cfg, opts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				logger.Info("Wrote artifact", "path", p)
			}
			pterm.Success.Printf("Generated %d file(s) in %s\n", len(paths), cfg.Output.Dir)
			return nil
		},
	}
}

func resolveAndEmit(cfg *config.Config, opts *rootOptions) ([]string, error) {
	ds, source, err := loadDataset(cfg)
	if err != nil {
		return nil, err
	}
	ctx, err := buildContext(cfg, opts)
	if err != nil {
		return nil, err
	}
	tab, err := caltab.Resolve(ds, ctx)
	if err != nil {
		return nil, err
	}
	info := emit.NewInfo(appName, Version, source, ctx)
	return emit.WriteFiles(cfg.Output.Dir, cfg.Output.Base, cfg.Output.Formats, tab, info)
}

func checkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the dataset and, if a context is configured, resolve it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(opts)
			if err != nil {
				return err
			}
			ds, source, err := loadDataset(cfg)
			if err != nil {
				return err
			}
			if err := ds.Validate(); err != nil {
				return err
			}
			pterm.Success.Printf("Dataset %s is valid\n", source)

			if len(cfg.Context) == 0 && len(opts.selections) == 0 {
				pterm.Info.Println("No context configured, skipping resolution check")
				return nil
			}
			ctx, err := buildContext(cfg, opts)
			if err != nil {
				return err
			}
			tab, err := caltab.Resolve(ds, ctx)
			if err != nil {
				return err
			}
			pterm.Success.Printf("Context resolves to %d constants\n", tab.Len())
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configuration axes and their members",
		Run: func(cmd *cobra.Command, args []string) {
			data := pterm.TableData{{"Axis", "Members"}}
			for _, a := range axis.All() {
				data = append(data, []string{string(a.Name), strings.Join(a.Members, ", ")})
			}
			_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}

func convertCmd(opts *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "convert <archive>...",
		Short: "Convert legacy sheet archives (.db, .csv) to dataset documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(opts); err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			written := 0
			for _, archive := range args {
				docs, err := ingest.ReadFile(archive)
				if err != nil {
					return err
				}
				for i, doc := range docs {
					raw, err := yaml.Marshal(doc)
					if err != nil {
						return err
					}
					name := fmt.Sprintf("%s-%02d.yaml", baseName(archive), i)
					path := filepath.Join(outDir, name)
					if err := os.WriteFile(path, raw, 0o644); err != nil {
						return err
					}
					written++
					pterm.Info.Printf("Wrote %s\n", path)
				}
			}
			pterm.Success.Printf("Converted %d document(s)\n", written)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "converted", "Output directory for dataset documents")
	return cmd
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func watchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate artifacts whenever dataset documents change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}
			if len(cfg.Dataset.Patterns) == 0 {
				return fmt.Errorf("watch mode needs dataset.patterns, the embedded dataset cannot change")
			}

			// Initial generation so the artifacts exist before the first change.
			if paths, err := resolveAndEmit(cfg, opts); err != nil {
				pterm.Error.Printf("Initial generation failed: %v\n", err)
			} else {
				pterm.Success.Printf("Generated %d file(s) in %s\n", len(paths), cfg.Output.Dir)
			}

			w, err := watch.New(cfg.Dataset.Patterns, cfg.Watch.GetDebounceDelay(), logger)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := w.Start(ctx); err != nil {
				return err
			}
			pterm.Info.Printf("Watching %s\n", strings.Join(cfg.Dataset.Patterns, " "))

			for {
				select {
				case <-ctx.Done():
					pterm.Info.Println("Watch stopped")
					return nil
				case event, ok := <-w.Events():
					if !ok {
						return nil
					}
					logger.Info("Dataset changed", "path", event.Path, "op", event.Operation)
					if paths, err := resolveAndEmit(cfg, opts); err != nil {
						pterm.Error.Printf("Regeneration failed: %v\n", err)
					} else {
						pterm.Success.Printf("Regenerated %d file(s)\n", len(paths))
					}
				}
			}
		},
	}
}
