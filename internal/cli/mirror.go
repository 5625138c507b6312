package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	artifactrepo "wfcatalog/internal/gateway/repository/artifact"
)

func newMirrorCmd(openMirror mirrorOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Inspect the export mirror bucket",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List the files held by the export mirror",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openMirror()
				if err != nil {
					return err
				}
				names, err := store.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("list mirror: %w", err)
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Print one mirrored file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openMirror()
				if err != nil {
					return err
				}
				body, err := store.Get(cmd.Context(), args[0])
				if errors.Is(err, artifactrepo.ErrNotFound) {
					return fmt.Errorf("%s: not in mirror", args[0])
				}
				if err != nil {
					return fmt.Errorf("get %s: %w", args[0], err)
				}
				_, err = cmd.OutOrStdout().Write(body)
				return err
			},
		},
	)
	return cmd
}
