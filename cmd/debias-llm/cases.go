package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nglebm19/debias-llm/internal/cases"
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Browse the built-in demonstration case library",
}

var casesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		all := cases.List()

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		}
		for _, c := range all {
			fmt.Printf("%-22s %s\n", c.ID, c.Title)
			if c.BiasType != "" {
				fmt.Printf("%-22s   %s\n", "", c.BiasType)
			}
		}
		return nil
	},
}

var casesShowCmd = &cobra.Command{
	Use:   "show <case-id>",
	Short: "Show one case in full, including the bias annotation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		c, err := cases.Get(args[0])
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		}
		fmt.Printf("%s (%s)\n\n", c.Title, c.ID)
		fmt.Printf("History of Present Illness:\n%s\n\n", c.Case.HPI)
		fmt.Printf("Past Medical History:\n%s\n\n", c.Case.PMH)
		fmt.Printf("Physical Examination:\n%s\n", c.Case.PhysicalExam)
		if c.BiasType != "" {
			fmt.Printf("\nBias type: %s\n", c.BiasType)
		}
		if c.ExpectedBias != "" {
			fmt.Printf("Expected bias: %s\n", c.ExpectedBias)
		}
		return nil
	},
}

func init() {
	casesListCmd.Flags().Bool("json", false, "output as JSON")
	casesShowCmd.Flags().Bool("json", false, "output as JSON")

	casesCmd.AddCommand(casesListCmd)
	casesCmd.AddCommand(casesShowCmd)
	rootCmd.AddCommand(casesCmd)
}
