// Package cli implements cropctl, the offline front end to the crop ranker.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cropadvisor/pkg/catalog"
	"cropadvisor/pkg/logging"
)

var (
	version = "dev"
	commit  = "none"
)

type rootOpts struct {
	catalogPath string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	cmd := &cobra.Command{
		Use:           "cropctl",
		Short:         "Rank crops for a soil and climate reading",
		Long:          "cropctl scores every crop in the catalog against rainfall, temperature, humidity and soil nutrients, and prints the best fits with soil and fertilizer advice.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "crop catalog file (.yaml, .csv or .xlsx); empty uses the built-in table")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	cmd.AddCommand(newRecommendCmd(opts))
	cmd.AddCommand(newCropsCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func (o *rootOpts) logger() (*zap.Logger, error) {
	log, err := logging.New(o.logLevel, "console")
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return log, nil
}

func (o *rootOpts) catalog(log *zap.Logger) (*catalog.Catalog, error) {
	if o.catalogPath == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFromFile(o.catalogPath)
	if err != nil {
		return nil, err
	}
	log.Debug("catalog loaded", zap.String("path", o.catalogPath), zap.Int("crops", cat.Len()))
	return cat, nil
}
