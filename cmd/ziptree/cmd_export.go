package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meigma/ziptree"
	"github.com/meigma/ziptree/internal/fsio"
)

// ExportResult is printed after a successful export.
type ExportResult struct {
	Archive string `json:"archive"`
	Entries int    `json:"entries"`
	Files   int    `json:"files"`
	Folders int    `json:"folders"`
	Size    int    `json:"size"`
	Digest  string `json:"digest"`
}

func newExportCmd(a *app) *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "export <dir> <archive>",
		Short: "Write a directory tree to a ZIP archive",
		Long: `Export reads every regular file and directory under <dir> and writes
them to <archive>. A ".zip" suffix is added when missing.

Template variables given with --var are substituted in file names and
contents, for example:

	ziptree export ./hw-template hw3 --var hwnum=3`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			values, err := parseVars(vars)
			if err != nil {
				return err
			}
			return a.export(args[0], args[1], values)
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "template variable as name=value (repeatable)")
	return cmd
}

func (a *app) export(dir, archivePath string, vars map[string]string) error {
	nodes, err := fsio.LoadTree(a.fs, dir)
	if err != nil {
		return fmt.Errorf("load %s: %w", dir, err)
	}
	if len(vars) > 0 {
		nodes, err = ziptree.Render(nodes, vars)
		if err != nil {
			return err
		}
	}

	codec := a.codec()
	data, err := codec.Encode(nodes)
	if err != nil {
		return err
	}

	if !strings.HasSuffix(strings.ToLower(archivePath), ".zip") {
		archivePath += ".zip"
	}
	if err := fsio.WriteFileAtomic(a.fs, archivePath, data); err != nil {
		return fmt.Errorf("write %s: %w", archivePath, err)
	}

	info, err := codec.Inspect(data)
	if err != nil {
		return err
	}
	res := ExportResult{
		Archive: archivePath,
		Entries: len(info.Entries),
		Files:   info.FileCount,
		Folders: info.FolderCount,
		Size:    info.Size,
		Digest:  info.Digest.String(),
	}
	a.log.Info("archive exported", "archive", archivePath, "entries", res.Entries, "digest", res.Digest)

	if a.jsonOutput {
		return a.printJSON(res)
	}
	_, err = fmt.Fprintf(a.out, "%s\t%d entries\t%s\n", res.Archive, res.Entries, res.Digest)
	return err
}

// parseVars converts name=value pairs into a map.
func parseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q, expected name=value", p)
		}
		vars[name] = value
	}
	return vars, nil
}
