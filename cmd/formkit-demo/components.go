package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/components"
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List the field components definitions can reference",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := components.NewDefaultRegistry()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range registry.Names() {
			descriptor, _ := registry.Descriptor(name)
			fmt.Fprintf(w, "%s\t%s\n", name, descriptor.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}
