package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCropsCmd(root *rootOpts) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "crops",
		Short: "List the crop catalog and its growing ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			cat, err := root.catalog(log)
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cat.Entries())
			}
			fmt.Fprint(cmd.OutOrStdout(), renderCatalog(cat.Entries()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
