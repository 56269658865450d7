// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/blocksparse/bsr"
	"github.com/katalvlaran/blocksparse/layout"
	"github.com/katalvlaran/blocksparse/snapshot"
)

// ConvertCmd converts a dense CSV matrix into a snapshot.
type ConvertCmd struct {
	Input       string `arg:"" help:"Dense matrix as CSV" type:"existingfile"`
	Out         string `short:"o" required:"" help:"Output snapshot path" type:"path"`
	Blocksize   string `default:"1x1" help:"Block size as RxC"`
	Orientation string `default:"row" enum:"row,col" help:"Compressed axis (row for BSR, col for BSC)"`
	Compression string `default:"zstd" enum:"none,zstd,lz4,xz" help:"Payload compression"`
}

func (c *ConvertCmd) Run(env *Env) error {
	r, cols, err := parseBlocksize(c.Blocksize)
	if err != nil {
		return err
	}
	comp, err := snapshot.ParseCompression(c.Compression)
	if err != nil {
		return err
	}
	d, err := readCSV(c.Input)
	if err != nil {
		return err
	}
	m, err := bsr.FromDense(d,
		bsr.WithBlocksize(r, cols),
		bsr.WithOrientation(parseOrientation(c.Orientation)),
		bsr.WithLogger(env.Logger),
	)
	if err != nil {
		return fmt.Errorf("convert %s: %w", c.Input, err)
	}
	if err := writeSnapshot(c.Out, m, comp); err != nil {
		return err
	}
	env.Logger.Info("snapshot written", "in", c.Input, "out", c.Out, "blocks", m.NNZBlocks(), "compression", comp.String())
	fmt.Fprintln(env.Out, m)

	return nil
}

// InspectCmd prints a summary of a snapshot.
type InspectCmd struct {
	File string `arg:"" help:"Snapshot path" type:"existingfile"`
}

func (c *InspectCmd) Run(env *Env) error {
	m, err := readSnapshot(c.File, env)
	if err != nil {
		return err
	}
	digest, err := snapshot.Digest(m)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Out, m)
	fmt.Fprintf(env.Out, "blocks: %d\n", m.NNZBlocks())
	fmt.Fprintf(env.Out, "sorted indices: %t\n", m.HasSortedIndices())
	fmt.Fprintf(env.Out, "digest: %s\n", digest)

	return nil
}

// DenseCmd prints a snapshot as a dense CSV matrix.
type DenseCmd struct {
	File string `arg:"" help:"Snapshot path" type:"existingfile"`
}

func (c *DenseCmd) Run(env *Env) error {
	m, err := readSnapshot(c.File, env)
	if err != nil {
		return err
	}
	d, err := m.ToDense()
	if err != nil {
		return err
	}

	return writeCSV(env.Out, d)
}

// SortCmd rewrites a snapshot with sorted block indices.
type SortCmd struct {
	File        string `arg:"" help:"Snapshot path" type:"existingfile"`
	Out         string `short:"o" required:"" help:"Output snapshot path" type:"path"`
	Compression string `default:"zstd" enum:"none,zstd,lz4,xz" help:"Payload compression"`
}

func (c *SortCmd) Run(env *Env) error {
	comp, err := snapshot.ParseCompression(c.Compression)
	if err != nil {
		return err
	}
	m, err := readSnapshot(c.File, env)
	if err != nil {
		return err
	}
	if m.HasSortedIndices() {
		env.Logger.Info("indices already sorted", "file", c.File)
	}
	if err := m.SortIndices(); err != nil {
		return fmt.Errorf("sort %s: %w", c.File, err)
	}

	return writeSnapshot(c.Out, m, comp)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(env *Env) error {
	fmt.Fprintf(env.Out, "bsrtool version %s\n", version)
	return nil
}

// parseBlocksize parses "RxC".
func parseBlocksize(s string) (int, int, error) {
	rs, cs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("blocksize %q: want RxC", s)
	}
	r, errR := strconv.Atoi(rs)
	c, errC := strconv.Atoi(cs)
	if err := errors.Join(errR, errC); err != nil {
		return 0, 0, fmt.Errorf("blocksize %q: %w", s, err)
	}

	return r, c, nil
}

func parseOrientation(s string) layout.Orientation {
	if s == "col" {
		return layout.ColMajor
	}

	return layout.RowMajor
}

func readSnapshot(path string, env *Env) (*bsr.BlockMatrix[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := snapshot.Decode[float64](bufio.NewReader(f), bsr.WithLogger(env.Logger))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	env.Logger.Debug("snapshot read", "file", path, "shape", m.Shape().String(), "blocks", m.NNZBlocks())

	return m, nil
}

func writeSnapshot(path string, m *bsr.BlockMatrix[float64], comp snapshot.Compression) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	w := bufio.NewWriter(f)
	if err := snapshot.Encode(w, m, snapshot.WithCompression(comp)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return w.Flush()
}
