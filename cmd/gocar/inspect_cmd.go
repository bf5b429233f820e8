// cmd/gocar/inspect_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-car/pkg/carfile"
)

func init() {
	rootCmd.AddCommand(inspectCmd())
}

func inspectCmd() *cobra.Command {
	var inputPath string
	var showBlocks bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect archive structure",
		Long: `Decode a content archive and print its structure: version, roots,
block count and, for version 2 archives, the data window and index layout.

Compressed archives (.car.zst, .car.xz) are decompressed transparently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := carfile.Decode(inputPath, nil)
			if err != nil {
				return fmt.Errorf("decode %s: %w", inputPath, err)
			}

			fmt.Printf("Archive: %s\n", inputPath)
			fmt.Printf("Version: %d\n", archive.Version())

			if v2 := archive.V2(); v2 != nil {
				fmt.Printf("Data window: [%d, %d) (%d bytes)\n",
					v2.Header.DataOffset, v2.Header.DataOffset+v2.Header.DataSize, v2.Header.DataSize)
				fmt.Printf("Fully indexed: %v\n", v2.IsFullyIndexed())
				if v2.Index != nil {
					fmt.Printf("Index: offset %d, codec 0x%04x (recognized: %v)\n",
						v2.Index.Offset, v2.Index.Codec, v2.Index.Recognized())
				} else {
					fmt.Println("Index: none")
				}
			}

			fmt.Printf("Roots: %d\n", len(archive.Roots()))
			for _, root := range archive.Roots() {
				fmt.Printf("  %s\n", root)
			}

			blocks := archive.Blocks()
			fmt.Printf("Blocks: %d\n", len(blocks))
			if showBlocks {
				for i, block := range blocks {
					fmt.Printf("  [%d] %s (%s)\n", i, block.CID(), formatSize(uint64(len(block.Payload()))))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input archive file (required)")
	cmd.Flags().BoolVar(&showBlocks, "blocks", false, "List every block with its CID and payload size")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// formatSize formats bytes into human-readable string
func formatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
