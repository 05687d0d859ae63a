package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"haircolor-mixer/blend"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List quick recipes and preset colors, or blend one recipe",
	Example: `  haircolor recipes
  haircolor recipes --load ash --level 10`,
	Args: cobra.NoArgs,
	RunE: runRecipes,
}

func init() {
	recipesCmd.Flags().String("load", "", "quick recipe key to blend")
	recipesCmd.Flags().Int("level", 0, "hair level 3-14 (0 = no adjustment)")
}

func runRecipes(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	state, err := cliState(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	key, _ := cmd.Flags().GetString("load")
	if key != "" {
		recipe, ok := cat.Recipe(key)
		if !ok {
			return fmt.Errorf("unknown quick recipe %q", key)
		}
		fmt.Fprintln(out, titleStyle.Render(recipe.Name))
		if recipe.Hex != "" {
			fmt.Fprintf(out, "%s reference %s\n", swatch(recipe.Hex, 8), recipe.Hex)
		}
		printBlend(out, blend.ComputeForState(cat, blend.FromRecipe(recipe), state))
		return nil
	}

	fmt.Fprintln(out, titleStyle.Render("Quick recipes"))
	for _, r := range cat.Recipes() {
		result := blend.ComputeForState(cat, blend.FromRecipe(r), state)
		fmt.Fprintf(out, "%s %-10s %-18s %s\n", swatch(result.Hex, 4), r.Key, r.Name, result.Hex)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("Preset colors"))
	for _, p := range cat.Presets() {
		fmt.Fprintf(out, "%s %s %s\n", swatch(p.Hex, 4), p.Hex, p.Name)
	}
	return nil
}
