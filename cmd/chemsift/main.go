package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/chemsift/chemsift/pkg/extract"
	"github.com/chemsift/chemsift/pkg/pattern"
	"github.com/chemsift/chemsift/pkg/segment"
)

var version = "0.1.0"

// runConfig is the optional TOML run configuration. Command-line flags
// override it.
type runConfig struct {
	Mode        string `toml:"mode"`
	Catalog     string `toml:"catalog"`
	PatternsDir string `toml:"patterns_dir"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "chemsift",
		Short: "Segment and extract data from chemistry program output",
		Long: `Chemsift carves computational chemistry log files (ORCA, GPAW, VASP)
into typed blocks using an ordered pattern catalog, then extracts
structured data from the blocks it recognizes.

Every byte of the input ends up in exactly one block, so nothing is
lost: unrecognized content is kept as raw text.`,
		Version: version,
	}

	rootCmd.AddCommand(blocksCmd())
	rootCmd.AddCommand(dataCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commonFlags are shared by the commands that need a catalog.
type commonFlags struct {
	configPath  string
	mode        string
	catalogPath string
	patternsDir string
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "TOML run configuration file")
	cmd.Flags().StringVar(&f.mode, "mode", "orca", "default catalog to use: orca, gpaw or vasp")
	cmd.Flags().StringVar(&f.catalogPath, "catalog", "", "YAML catalog file replacing the built-in defaults")
	cmd.Flags().StringVar(&f.patternsDir, "patterns-dir", "", "directory of user YAML catalogs merged on top")
}

// buildCatalog resolves flags and config into one catalog: an explicit
// catalog file wins over the mode default, and user pattern directories are
// merged on top at lowest priority.
func (f *commonFlags) buildCatalog(cmd *cobra.Command) (*pattern.Catalog, error) {
	if f.configPath != "" {
		var cfg runConfig
		if _, err := toml.DecodeFile(f.configPath, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", f.configPath, err)
		}
		if cfg.Mode != "" && !cmd.Flags().Changed("mode") {
			f.mode = cfg.Mode
		}
		if cfg.Catalog != "" && !cmd.Flags().Changed("catalog") {
			f.catalogPath = cfg.Catalog
		}
		if cfg.PatternsDir != "" && !cmd.Flags().Changed("patterns-dir") {
			f.patternsDir = cfg.PatternsDir
		}
	}

	var base *pattern.Catalog
	var err error
	if f.catalogPath != "" {
		base, err = pattern.Load(f.catalogPath)
	} else {
		base, err = pattern.Default(pattern.Mode(f.mode))
	}
	if err != nil {
		return nil, err
	}

	if f.patternsDir == "" {
		return base, nil
	}
	loader, err := pattern.NewDirLoader(base, f.patternsDir)
	if err != nil {
		return nil, err
	}
	return loader.Catalog(), nil
}

func blocksCmd() *cobra.Command {
	var flags commonFlags
	var asJSON bool
	var unknownOnly bool

	cmd := &cobra.Command{
		Use:   "blocks [input-file]",
		Short: "Segment a log file and list its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := flags.buildCatalog(cmd)
			if err != nil {
				return err
			}
			doc, err := segmentFile(args[0], cat)
			if err != nil {
				return err
			}

			blocks := doc.Blocks()
			if unknownOnly {
				blocks = doc.Filter(func(b *segment.Block) bool {
					return b.Subtype() == segment.SubtypeUnknown || b.Generic()
				})
			}

			if asJSON {
				return writeBlocksJSON(cmd, blocks)
			}
			for _, b := range blocks {
				fmt.Fprintf(cmd.OutOrStdout(), "%-45s chars=%v lines=%v %s\n",
					b.Subtype(), b.CharSpan(), b.LineSpan(), b.ReadableName())
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit blocks as JSON")
	cmd.Flags().BoolVar(&unknownOnly, "unknown-only", false, "only blocks no specific pattern recognized")
	return cmd
}

func dataCmd() *cobra.Command {
	var flags commonFlags
	var (
		subtype      string
		readableName string
		withSub      []string
		withoutSub   []string
	)

	cmd := &cobra.Command{
		Use:   "data [input-file]",
		Short: "Segment a log file and extract structured data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := flags.buildCatalog(cmd)
			if err != nil {
				return err
			}
			doc, err := segmentFile(args[0], cat)
			if err != nil {
				return err
			}

			blocks := doc.Filter(func(b *segment.Block) bool {
				if b.IsSpacer() {
					return false
				}
				if subtype != "" && b.Subtype() != subtype {
					return false
				}
				if readableName != "" && b.ReadableName() != readableName {
					return false
				}
				for _, s := range withSub {
					if !strings.Contains(b.Raw(), s) {
						return false
					}
				}
				for _, s := range withoutSub {
					if strings.Contains(b.Raw(), s) {
						return false
					}
				}
				return true
			})

			registry := extract.DefaultRegistry()
			out := make([]blockData, 0, len(blocks))
			for _, b := range blocks {
				out = append(out, blockData{
					Subtype:      b.Subtype(),
					ReadableName: b.ReadableName(),
					CharSpan:     [2]int{b.CharSpan().Start, b.CharSpan().End},
					LineSpan:     [2]int{b.LineSpan().Start, b.LineSpan().End},
					Data:         registry.Extract(b),
				})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&subtype, "subtype", "", "only blocks with this subtype")
	cmd.Flags().StringVar(&readableName, "readable-name", "", "only blocks with this derived title")
	cmd.Flags().StringArrayVar(&withSub, "with-substring", nil, "only blocks whose raw text contains this substring (repeatable)")
	cmd.Flags().StringArrayVar(&withoutSub, "without-substring", nil, "exclude blocks whose raw text contains this substring (repeatable)")
	return cmd
}

func catalogCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the resolved pattern catalog tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := flags.buildCatalog(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cat.Tree())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

type blockData struct {
	Subtype      string          `json:"subtype"`
	ReadableName string          `json:"readable_name"`
	CharSpan     [2]int          `json:"char_span"`
	LineSpan     [2]int          `json:"line_span"`
	Data         *extract.Result `json:"data,omitempty"`
}

func segmentFile(path string, cat *pattern.Catalog) (*segment.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return segment.Segment(string(data), cat)
}

func writeBlocksJSON(cmd *cobra.Command, blocks []*segment.Block) error {
	out := make([]blockData, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockData{
			Subtype:      b.Subtype(),
			ReadableName: b.ReadableName(),
			CharSpan:     [2]int{b.CharSpan().Start, b.CharSpan().End},
			LineSpan:     [2]int{b.LineSpan().Start, b.LineSpan().End},
		})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

