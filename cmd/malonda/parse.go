package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/malondahq/malonda/internal/command"
	"github.com/malondahq/malonda/internal/lang"
	"github.com/spf13/cobra"
)

var parseJSONOutput bool

// parseResult is what the parse command prints for one phrase.
type parseResult struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Intent     string `json:"intent"`
	Quantity   int    `json:"quantity,omitempty"`
	Item       string `json:"item,omitempty"`
	UnitPrice  int    `json:"unit_price,omitempty"`
	Amount     int    `json:"amount,omitempty"`
	Error      string `json:"error,omitempty"`
}

var parseCmd = &cobra.Command{
	Use:   "parse [phrase]",
	Short: "Run a phrase through the command pipeline without touching the store",
	Long: "Normalizes, classifies, and extracts fields from a bookkeeping phrase " +
		"and prints the result. Useful for checking how a phrasing will be interpreted.",
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSONOutput, "json", false, "Output in JSON format")
}

func runParse(cmd *cobra.Command, args []string) error {
	raw := strings.Join(args, " ")

	normalized := lang.Normalize(raw)
	intent := command.Classify(normalized)

	result := parseResult{
		Input:      raw,
		Normalized: normalized,
		Intent:     intent.String(),
	}

	fields, err := command.Extract(intent, normalized)
	if err != nil {
		result.Error = err.Error()
	} else {
		result.Quantity = fields.Quantity
		result.Item = fields.Item
		result.UnitPrice = fields.UnitPrice
		result.Amount = fields.Amount
	}

	if parseJSONOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("input:      %s\n", result.Input)
	fmt.Printf("normalized: %s\n", result.Normalized)
	fmt.Printf("intent:     %s\n", result.Intent)
	if result.Error != "" {
		fmt.Printf("error:      %s\n", result.Error)
		return nil
	}
	if result.Item != "" {
		fmt.Printf("item:       %s\n", result.Item)
	}
	if result.Quantity != 0 {
		fmt.Printf("quantity:   %d\n", result.Quantity)
	}
	if result.UnitPrice != 0 {
		fmt.Printf("unit price: %d\n", result.UnitPrice)
	}
	if result.Amount != 0 {
		fmt.Printf("amount:     %d\n", result.Amount)
	}
	return nil
}
