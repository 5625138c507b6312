package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wfcatalog/internal/export"
	"wfcatalog/internal/util/jsonutil"
)

// convertDetails mirrors the details document of the batch export.
type convertDetails struct {
	Converted []string `json:"converted"`
	SkippedUI []string `json:"skipped_ui"`
	SourceDir string   `json:"source_dir"`
	DestDir   string   `json:"dest_dir"`
}

func newConvertCmd(openMirror mirrorOpener) *cobra.Command {
	var (
		source    string
		dest      string
		overwrite bool
		glob      string
		asJSON    bool
		mirror    bool
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Copy workflows that are already API graphs into the export directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" || dest == "" {
				cfg, err := loadDefaults()
				if err != nil {
					return err
				}
				if source == "" {
					source = cfg.WorkflowsDir
				}
				if dest == "" {
					dest = cfg.ExportDir
				}
			}

			var opts []export.Option
			if mirror {
				store, err := openMirror()
				if err != nil {
					return err
				}
				opts = append(opts, export.WithMirror(store))
			}

			res, err := export.New(opts...).ConvertAll(cmd.Context(), export.Request{
				SourceDir: source,
				DestDir:   dest,
				Overwrite: overwrite,
				Glob:      glob,
			})
			if err != nil {
				return fmt.Errorf("convert workflows: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				body, err := jsonutil.MarshalNoEscape(res)
				if err != nil {
					return err
				}
				body, err = jsonutil.IndentNoEscape(body, "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(body))
				return nil
			}

			details, err := jsonutil.MarshalNoEscape(convertDetails{
				Converted: res.Converted,
				SkippedUI: res.SkippedUI,
				SourceDir: res.SourceDir,
				DestDir:   res.DestDir,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, res.Summary())
			fmt.Fprintln(out, string(details))
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "source directory (default: configured workflows dir)")
	cmd.Flags().StringVar(&dest, "dest", "", "destination directory (default: configured export dir)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing destination files")
	cmd.Flags().StringVar(&glob, "glob", export.DefaultGlob, "pattern selecting source files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&mirror, "mirror", false, "also upload converted files to the configured export mirror")
	return cmd
}
