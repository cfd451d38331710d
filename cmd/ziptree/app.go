package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/meigma/ziptree"
	"github.com/meigma/ziptree/internal/config"
)

// app holds state shared by all commands: the filesystem, output streams
// and the configuration resolved from global flags.
type app struct {
	fs     afero.Fs
	out    io.Writer
	errOut io.Writer
	lookup config.LookupFunc

	configPath string
	envFile    string
	logLevel   string
	jsonOutput bool

	cfg *config.Config
	log *slog.Logger
}

// setup loads configuration and builds the logger. It runs before every
// subcommand.
func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.fs, a.configPath, a.envFile, a.lookup)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	log, err := cfg.Logger(a.errOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// codec returns a Codec configured from the loaded settings. Extra options
// are applied last.
func (a *app) codec(extra ...ziptree.Option) *ziptree.Codec {
	c := a.cfg.Codec
	opts := []ziptree.Option{
		ziptree.WithLogger(a.log),
		ziptree.WithMaxDepth(c.MaxDepth),
		ziptree.WithMaxFileSize(c.MaxFileSize),
		ziptree.WithMaxEntries(c.MaxEntries),
		ziptree.WithVerifyChecksums(c.VerifyChecksums),
	}
	return ziptree.New(append(opts, extra...)...)
}

// printJSON writes v as indented JSON.
func (a *app) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialize result JSON: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

// countNodes returns the number of files and folders in a tree.
func countNodes(nodes []ziptree.Node) (files, folders int) {
	stack := append([]ziptree.Node(nil), nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := n.(type) {
		case *ziptree.File:
			files++
		case *ziptree.Folder:
			folders++
			stack = append(stack, n.Children...)
		}
	}
	return files, folders
}
