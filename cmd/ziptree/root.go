package main

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/meigma/ziptree/internal/config"
)

// newRootCmd builds the command tree. All file access goes through fsys.
func newRootCmd(fsys afero.Fs, stdout, stderr io.Writer, lookup config.LookupFunc) *cobra.Command {
	a := &app{
		fs:     fsys,
		out:    stdout,
		errOut: stderr,
		lookup: lookup,
	}

	rootCmd := &cobra.Command{
		Use:   "ziptree",
		Short: "Export and import folder trees as ZIP bundles",
		Long: `ziptree converts a directory tree into a ZIP archive and back.

Archives are written uncompressed. Archives written by other tools may use
store or deflate compression.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	f := rootCmd.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "yaml configuration file")
	f.StringVar(&a.envFile, "env-file", ".env", "dotenv file with ZIPTREE_* overrides (ignored if missing)")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.BoolVar(&a.jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		newExportCmd(a),
		newImportCmd(a),
		newInspectCmd(a),
		newVerifyCmd(a),
	)
	return rootCmd
}
