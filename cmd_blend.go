package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"haircolor-mixer/blend"
	"haircolor-mixer/models"
	"haircolor-mixer/utils"
)

var blendCmd = &cobra.Command{
	Use:   "blend [brand:]CODE=RATIO...",
	Short: "Blend pigments and print the predicted color",
	Example: `  haircolor blend 10GR=60 9SB=40
  haircolor blend blcolor:3-7=70 blcolor:3-8=30 --level 9`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBlend,
}

func init() {
	blendCmd.Flags().Int("level", 0, "hair level 3-14 (0 = no adjustment)")
}

func runBlend(cmd *cobra.Command, args []string) error {
	ingredients, err := utils.ParseIngredientSpecs(args)
	if err != nil {
		return err
	}
	state, err := cliState(cmd)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	printBlend(cmd.OutOrStdout(), blend.ComputeForState(cat, ingredients, state))
	return nil
}

// cliState builds the UI state from the configuration and the --level flag
func cliState(cmd *cobra.Command) (models.UIState, error) {
	state := models.UIState{
		Mode:    models.ModeRecipe,
		Brand:   cfg.Blend.DefaultBrand,
		Resolve: cfg.ResolveMode(),
	}
	if f := cmd.Flags().Lookup("level"); f != nil {
		level, err := cmd.Flags().GetInt("level")
		if err != nil {
			return state, err
		}
		if level != 0 {
			if _, ok := blend.LevelDelta(level); !ok {
				return state, fmt.Errorf("level must be between %d and %d", blend.MinLevel, blend.MaxLevel)
			}
			state.Level = &level
		}
	}
	return state, nil
}
