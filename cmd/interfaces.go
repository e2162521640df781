package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hostgen/internal/adapter/infrastructure/network"
	"hostgen/internal/pkg/netselect"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces [selector]",
	Short: "List interface networks, optionally narrowed by a selector expression",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		networks, err := network.NewSnapshotAdapter().Networks()
		if err != nil {
			return err
		}
		universe := netselect.Universe(networks)

		matched := universe
		if len(args) == 1 {
			sel, err := netselect.ParseString(args[0])
			if err != nil {
				return err
			}
			matched = netselect.Filter(universe, sel)
		}

		for _, n := range matched {
			fmt.Println(n)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(interfacesCmd)
}
