package main

import (
	"github.com/spf13/cobra"

	"github.com/HeNeos/graph-algorithms-in-maps/config"
)

type globalFlags struct {
	envFiles []string
	backend  string
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "graphmaps",
		Short:         "Shortest routes over road networks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	cmd.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend, overrides STORAGE_BACKEND")

	cmd.AddCommand(
		newServeCommand(&flags),
		newSearchCommand(&flags),
		newImportCommand(&flags),
		newSummaryCommand(&flags),
	)
	return cmd
}

func (f *globalFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.envFiles...)
	if err != nil {
		return config.Config{}, err
	}
	if f.backend != "" {
		cfg.StorageBackend = f.backend
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}
