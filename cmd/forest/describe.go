package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newDescribeCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the description and statistics of a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			var b strings.Builder
			m.AppendDescriptionAndStatistics(full, &b)
			_, err = io.WriteString(cmd.OutOrStdout(), b.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "also print the structure of every tree")
	return cmd
}

func (a *app) newStructureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "structure",
		Short: "Print the trees of a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			var b strings.Builder
			m.AppendModelStructure(&b)
			_, err = io.WriteString(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}
