package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hostgen/internal/adapter/infrastructure/network"
	"hostgen/internal/pkg/entry"
	"hostgen/internal/pkg/generate"
	"hostgen/internal/pkg/tags"
)

var (
	configFlags []string
	leaseFlags  []string
	outputFlag  string
	formatFlag  string
	tagFlags    []string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Resolve hosts against the live interfaces and render entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := entry.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		opts := generate.Options{
			ConfigPaths: configFlags,
			LeasePaths:  leaseFlags,
			Format:      format,
			QueryTags:   tags.New(tagFlags...),
		}

		var w *os.File = os.Stdout
		if outputFlag != "" {
			f, err := os.Create(outputFlag)
			if err != nil {
				return fmt.Errorf("failed to create output file %s: %w", outputFlag, err)
			}
			defer f.Close()
			w = f
		}

		return generate.Run(network.NewSnapshotAdapter(), opts, w)
	},
	SilenceUsage: true,
}

func init() {
	generateCmd.Flags().StringSliceVarP(&configFlags, "config", "c", nil, "Host configuration file (repeatable; earlier files win ties)")
	generateCmd.Flags().StringSliceVarP(&leaseFlags, "lease", "l", nil, "dnsmasq lease file merged as a lower-priority source (repeatable)")
	generateCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default stdout)")
	generateCmd.Flags().StringVarP(&formatFlag, "format", "F", "", "Output format: dnsmasq, zone or env")
	generateCmd.Flags().StringSliceVarP(&tagFlags, "tags", "t", nil, "Only emit hosts whose tag scope carries all of these tags")
	if err := generateCmd.MarkFlagRequired("format"); err != nil {
		panic(err)
	}
	if err := generateCmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(generateCmd)
}
