package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// InspectEntry is one row of inspect output.
type InspectEntry struct {
	Path             string    `json:"path"`
	Method           string    `json:"method"`
	CompressedSize   uint32    `json:"compressed_size"`
	UncompressedSize uint32    `json:"uncompressed_size"`
	CRC32            string    `json:"crc32"`
	Offset           uint32    `json:"offset"`
	Modified         time.Time `json:"modified"`
}

// InspectOutput is printed by the inspect command.
type InspectOutput struct {
	Archive          string         `json:"archive"`
	Digest           string         `json:"digest"`
	Size             int            `json:"size"`
	Files            int            `json:"files"`
	Folders          int            `json:"folders"`
	CompressionRatio float64        `json:"compression_ratio"`
	Entries          []InspectEntry `json:"entries"`
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <archive>",
		Short: "List the entries of a ZIP archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.inspect(args[0])
		},
	}
}

func (a *app) inspect(archivePath string) error {
	data, err := afero.ReadFile(a.fs, archivePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", archivePath, err)
	}
	res, err := a.codec().Inspect(data)
	if err != nil {
		return fmt.Errorf("%s: %w", archivePath, err)
	}

	out := InspectOutput{
		Archive:          archivePath,
		Digest:           res.Digest.String(),
		Size:             res.Size,
		Files:            res.FileCount,
		Folders:          res.FolderCount,
		CompressionRatio: res.CompressionRatio(),
		Entries:          make([]InspectEntry, 0, len(res.Entries)),
	}
	for _, e := range res.Entries {
		out.Entries = append(out.Entries, InspectEntry{
			Path:             e.Path,
			Method:           e.Method.String(),
			CompressedSize:   e.CompressedSize,
			UncompressedSize: e.UncompressedSize,
			CRC32:            fmt.Sprintf("%08x", e.CRC32),
			Offset:           e.LocalHeaderOffset,
			Modified:         e.Modified,
		})
	}

	if a.jsonOutput {
		return a.printJSON(out)
	}

	fmt.Fprintf(a.out, "%s  %s  %d bytes  %d files  %d folders\n",
		out.Archive, out.Digest, out.Size, out.Files, out.Folders)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tMETHOD\tSIZE\tSTORED\tCRC32\tOFFSET\tMODIFIED")
	for _, e := range out.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%d\t%s\n",
			e.Path, e.Method, e.UncompressedSize, e.CompressedSize, e.CRC32, e.Offset,
			e.Modified.Format(time.DateTime))
	}
	return tw.Flush()
}
