package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"codeslabs/infrastructure/audit"
	"codeslabs/infrastructure/content"
	"codeslabs/infrastructure/seed"
	"codeslabs/infrastructure/sqlite"
)

func newSeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load initial projects and company values from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), a, cmd)
		},
	}
	cmd.Flags().String("seed-file", "", "seed file (default content/seed.yaml)")
	return cmd
}

func runSeed(ctx context.Context, a *app, cmd *cobra.Command) error {
	path, err := resolveSeedFile(a.cfg.SeedFile)
	if err != nil {
		return err
	}
	f, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	db, err := sqlite.OpenDB(a.cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := sqlite.ApplyEmbeddedMigrations(ctx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	res, err := seed.Apply(ctx, content.NewStore(db, audit.NewService()), f)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d projects, %d details, %d values from %s (%d already present)\n",
		res.Projects, res.Details, res.Values, path, res.Skipped)
	return nil
}

// resolveSeedFile finds a relative seed path from the working directory,
// the repo root two levels up, or next to this source file.
func resolveSeedFile(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	candidates := []string{
		name,
		filepath.Join("..", "..", name),
	}
	if _, file, _, ok := runtime.Caller(0); ok {
		candidates = append(candidates, filepath.Join(filepath.Dir(file), "..", "..", name))
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		tried = append(tried, absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("seed file not found; tried: %s", strings.Join(tried, ", "))
}
