package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"todo-assistant/pkg/llmprovider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the enabled language model providers in fallback order",
	Args:  cobra.NoArgs,
	RunE:  runProviders,
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	providers, warnings, err := llmprovider.InitializeProviders(&cfg.LLM)
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, p := range providers {
		fmt.Fprintf(out, "%d. %s\t%s\n", i+1, p.Name(), p.Model())
	}
	return nil
}
