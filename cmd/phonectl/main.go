package main

import (
	"fmt"
	"os"

	"flagphone_backend/internal/countries"
	"flagphone_backend/platform/config"
	"flagphone_backend/platform/logger"
	"flagphone_backend/platform/phone"

	"github.com/spf13/cobra"
)

// deps is built once per invocation, after flags are parsed.
type deps struct {
	cfg  *config.Config
	log  *logger.Logger
	plan *phone.Plan
	dir  *countries.Directory
}

var (
	region  string
	current *deps
)

var rootCmd = &cobra.Command{
	Use:   "phonectl",
	Short: "Format, validate and inspect phone numbers from the command line",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		d, err := loadDeps()
		if err != nil {
			return err
		}
		current = d
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "region code (default from DEFAULT_REGION or the locale)")
	rootCmd.AddCommand(newFormatCmd(), newValidateCmd(), newCountriesCmd(), newUploadFlagsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if region != "" {
		cfg.DefaultRegion = countries.NormalizeCode(region)
	}

	log := logger.NewWithWriter(cfg.Env, os.Stderr)
	plan := phone.NewPlan(cfg.GetDefaultRegion())

	dir, err := countries.Load(plan, cfg.GetDisplayLocale())
	if err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}
	if sel := countries.FromLists(cfg.GetCountriesInclude(), cfg.GetCountriesExclude()); sel.Mode != countries.ModeAll {
		dir = countries.NewDirectory(dir.Apply(sel))
	}

	return &deps{cfg: cfg, log: log, plan: plan, dir: dir}, nil
}
