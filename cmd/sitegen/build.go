package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy_prospectus/pkg/core/logging"
	"energy_prospectus/pkg/core/page"
	"energy_prospectus/pkg/core/store"
)

var outDir string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the static site (page, assets, fallback charts) to a directory",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "dist", "Output directory")
}

func runBuild(cmd *cobra.Command, args []string) error {
	log := logging.OrNop(logger)

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	site, err := page.Build(cfg, reg, log)
	if err != nil {
		return err
	}

	st, err := store.NewSiteStore(outDir)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	manifest, err := st.Save(ctx, site.Files())
	if err != nil {
		return err
	}

	log.Info("site written", zap.String("dir", st.Dir()), zap.Int("files", len(manifest.Files)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d files to %s\n", len(manifest.Files), st.Dir())
	return nil
}
