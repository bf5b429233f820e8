// cmd/gocar/roots_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-car/pkg/carfile"
)

func init() {
	rootCmd.AddCommand(rootsCmd())
}

func rootsCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "roots",
		Short: "Print the archive's root CIDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := carfile.Decode(inputPath, nil)
			if err != nil {
				return fmt.Errorf("decode %s: %w", inputPath, err)
			}

			for _, root := range archive.Roots() {
				fmt.Println(root)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input archive file (required)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}
