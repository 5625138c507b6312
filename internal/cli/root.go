// Package cli implements the wfctl command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wfcatalog/internal/gateway/app"
	"wfcatalog/internal/gateway/config"
	artifactrepo "wfcatalog/internal/gateway/repository/artifact"
)

// mirrorOpener returns the configured export mirror.
type mirrorOpener func() (artifactrepo.Store, error)

// NewRootCmd builds the wfctl command tree. Directory flags default to the
// values resolved from the environment and an optional .env file.
func NewRootCmd() *cobra.Command {
	return newRootCmd(openConfiguredMirror)
}

func newRootCmd(openMirror mirrorOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "wfctl",
		Short:         "Inspect, list and export workflow files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newConvertCmd(openMirror), newListCmd(), newClassifyCmd(), newMirrorCmd(openMirror))
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadDefaults() (*config.Config, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openConfiguredMirror() (artifactrepo.Store, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}
	store, err := app.OpenMirrorStore(cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("no export mirror configured; set ARTIFACT_S3_ENDPOINT")
	}
	return store, nil
}
