package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/meigma/ziptree/internal/fsio"
)

// ImportResult is printed after a successful import.
type ImportResult struct {
	Archive string `json:"archive"`
	Dir     string `json:"dir"`
	Files   int    `json:"files"`
	Folders int    `json:"folders"`
}

func newImportCmd(a *app) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "import <archive> <dir>",
		Short: "Extract a ZIP archive into a directory",
		Long: `Import decodes <archive> and writes its tree under <dir>. Folders are
created for every path prefix. Existing files are kept unless --overwrite
is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.importArchive(args[0], args[1], overwrite)
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing files")
	return cmd
}

func (a *app) importArchive(archivePath, dir string, overwrite bool) error {
	data, err := afero.ReadFile(a.fs, archivePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", archivePath, err)
	}
	nodes, err := a.codec().Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", archivePath, err)
	}
	if err := fsio.SaveTree(a.fs, dir, nodes, overwrite); err != nil {
		return err
	}

	files, folders := countNodes(nodes)
	res := ImportResult{Archive: archivePath, Dir: dir, Files: files, Folders: folders}
	a.log.Info("archive imported", "archive", archivePath, "dir", dir, "files", files, "folders", folders)

	if a.jsonOutput {
		return a.printJSON(res)
	}
	_, err = fmt.Fprintf(a.out, "%s -> %s\t%d files\t%d folders\n", archivePath, dir, files, folders)
	return err
}
