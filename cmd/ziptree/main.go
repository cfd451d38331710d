// Command ziptree exports directories as ZIP bundles and imports them back.
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	root := newRootCmd(afero.NewOsFs(), os.Stdout, os.Stderr, os.LookupEnv)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
