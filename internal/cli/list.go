package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wfcatalog/internal/catalog"
	"wfcatalog/internal/safeio"
	"wfcatalog/internal/util/jsonutil"
)

func newListCmd() *cobra.Command {
	var (
		dir    string
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog listing of a workflows directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := loadDefaults()
				if err != nil {
					return err
				}
				dir = cfg.WorkflowsDir
			}
			root, err := safeio.NewOS(dir)
			if err != nil {
				return err
			}
			c, err := catalog.New(root, catalog.Options{RoutePrefix: prefix})
			if err != nil {
				return err
			}
			entries, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			body, err := jsonutil.MarshalNoEscape(entries)
			if err != nil {
				return err
			}
			body, err = jsonutil.IndentNoEscape(body, "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "workflows directory (default: configured workflows dir)")
	cmd.Flags().StringVar(&prefix, "prefix", catalog.DefaultRoutePrefix, "route prefix used in entry URLs")
	return cmd
}
