package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"haircolor-mixer/models"
	"haircolor-mixer/service"
	"haircolor-mixer/utils"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a product amount between roots and ends",
	Example: `  haircolor split --length long
  haircolor split --total 90 --root 70 --ends 30`,
	Args: cobra.NoArgs,
	// Pure arithmetic; no configuration or catalog needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runSplit,
}

func init() {
	splitCmd.Flags().String("length", "", "hair length (short, medium, long, superlong)")
	splitCmd.Flags().Float64("total", 0, "total amount in grams (default from hair length)")
	splitCmd.Flags().Float64("root", 0, "root percent (default 60)")
	splitCmd.Flags().Float64("ends", 0, "ends percent (default 40)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	var req models.AmountRequest
	req.HairLength, _ = cmd.Flags().GetString("length")
	req.Total, _ = cmd.Flags().GetFloat64("total")
	req.RootPercent, _ = cmd.Flags().GetFloat64("root")
	req.EndsPercent, _ = cmd.Flags().GetFloat64("ends")

	resp, err := service.SplitAmount(req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render(resp.HairLengthText), utils.FormatGrams(resp.Total))
	fmt.Fprintf(out, "Root  %s (%s)\n", utils.FormatGrams(resp.RootAmount), utils.FormatPercent(resp.RootPercent))
	fmt.Fprintf(out, "Ends  %s (%s)\n", utils.FormatGrams(resp.EndsAmount), utils.FormatPercent(resp.EndsPercent))
	return nil
}
