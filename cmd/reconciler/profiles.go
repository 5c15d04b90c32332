package main

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newProfilesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the category profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewTable(cmd.OutOrStdout())
			table.Header("Profile", "Categories")
			for _, p := range a.uc.Profiles().All() {
				if err := table.Append(p.Name, strings.Join(p.Categories, ", ")); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
