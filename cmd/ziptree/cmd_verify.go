package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/ziptree"
)

// VerifyResult reports the outcome for one archive.
type VerifyResult struct {
	Archive string `json:"archive"`
	OK      bool   `json:"ok"`
	Nodes   int    `json:"nodes,omitempty"`
	Error   string `json:"error,omitempty"`
}

func newVerifyCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "verify <archive>...",
		Short: "Decode archives and check every entry's CRC-32",
		Long: `Verify fully decodes each archive with checksum verification enabled.
Up to --workers archives are checked at once. Every failure is reported and
the command exits non-zero if any archive is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers == 0 {
				workers = a.cfg.Workers
			}
			if workers < 0 {
				return fmt.Errorf("expected --workers to be positive, is %d", workers)
			}
			return a.verify(cmd.Context(), args, workers)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "archives to verify concurrently (default from config)")
	return cmd
}

func (a *app) verify(ctx context.Context, archives []string, workers int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c := a.codec(ziptree.WithVerifyChecksums(true))

	results := make([]VerifyResult, len(archives))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range archives {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := VerifyResult{Archive: path}
			nodes, err := a.verifyOne(c, path)
			if err != nil {
				res.Error = err.Error()
				a.log.Warn("archive invalid", "archive", path, "error", err)
			} else {
				res.OK = true
				res.Nodes = nodes
				a.log.Debug("archive verified", "archive", path, "nodes", nodes)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}

	if a.jsonOutput {
		if err := a.printJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.OK {
				fmt.Fprintf(a.out, "ok\t%s\t%d nodes\n", r.Archive, r.Nodes)
			} else {
				fmt.Fprintf(a.out, "FAIL\t%s\t%s\n", r.Archive, r.Error)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d archives invalid", failed, len(archives))
	}
	return nil
}

// verifyOne decodes a single archive and returns the number of nodes in it.
func (a *app) verifyOne(c *ziptree.Codec, path string) (int, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return 0, err
	}
	nodes, err := c.Decode(data)
	if err != nil {
		return 0, err
	}
	files, folders := countNodes(nodes)
	return files + folders, nil
}
