// Command nbtdump prints tagged binary trees in a readable indented layout.
// It reads standalone files (optionally gzip or zlib compressed) as well as
// single chunks extracted from region containers.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/arloliu/mcworld"
	"github.com/arloliu/mcworld/format"
	"github.com/arloliu/mcworld/pretty"
)

// CLI defines the command-line interface for nbtdump.
var CLI struct {
	File   FileCmd   `cmd:"" help:"Dump a tagged binary file"`
	Region RegionCmd `cmd:"" help:"Dump one chunk from a region file"`
}

// FileCmd dumps a standalone tagged binary file.
type FileCmd struct {
	Path        string `arg:"" help:"Path to the tagged binary file" type:"existingfile"`
	Compression string `short:"c" enum:"auto,gzip,zlib,none" default:"auto" help:"Compression of the input (auto sniffs magic bytes)"`
}

func (c *FileCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}

	ct := resolveCompression(c.Compression, data)

	name, tag, err := mcworld.DecodeCompressed(bytes.NewReader(data), ct)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", c.Path, err)
	}

	return pretty.FprintNamed(os.Stdout, name, tag)
}

// RegionCmd dumps a single chunk from a region file.
type RegionCmd struct {
	Path string `arg:"" help:"Path to the region file" type:"existingfile"`
	X    int    `arg:"" help:"Chunk x coordinate within the region (0-31)"`
	Z    int    `arg:"" help:"Chunk z coordinate within the region (0-31)"`
}

func (c *RegionCmd) Run() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	defer f.Close()

	rf, err := mcworld.OpenRegion(f)
	if err != nil {
		return fmt.Errorf("failed to read region header of %s: %w", c.Path, err)
	}

	tag, err := rf.LoadChunk(c.X, c.Z)
	if err != nil {
		return fmt.Errorf("failed to load chunk from %s: %w", c.Path, err)
	}

	return pretty.Fprint(os.Stdout, tag)
}

// resolveCompression maps the command-line mode to a wire compression type.
// Gzip streams begin with the magic bytes 0x1f 0x8b, zlib streams with a
// CMF byte of 0x78; anything else is treated as uncompressed.
func resolveCompression(mode string, data []byte) format.CompressionType {
	switch mode {
	case "gzip":
		return format.CompressionGzip
	case "zlib":
		return format.CompressionZlib
	case "none":
		return format.CompressionNone
	}

	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return format.CompressionGzip
	}
	if len(data) >= 1 && data[0] == 0x78 {
		return format.CompressionZlib
	}

	return format.CompressionNone
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("nbtdump"),
		kong.Description("Dump tagged binary trees and region chunks in a readable layout"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
