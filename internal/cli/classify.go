package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wfcatalog/internal/workflow"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify FILE...",
		Short: "Report whether each file is an API graph or a UI workflow",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, file := range args {
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				kind := "invalid"
				if doc, err := workflow.Parse(raw); err == nil {
					kind = workflow.Classify(doc).String()
				}
				fmt.Fprintf(out, "%s\t%s\n", file, kind)
			}
			return nil
		},
	}
}
