package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"haircolor-mixer/catalog"
	"haircolor-mixer/models"
)

// RecipeGenerator turns a prompt into free-text recipe advice
// *gemini.Client implements it
type RecipeGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Section headings the generator is asked to use
const (
	sectionFormula     = "Formula"
	sectionResult      = "Expected result"
	sectionCautions    = "Cautions"
	sectionImagePrompt = "Image prompt"
)

// BuildRecipePrompt serialises the pigment table of brand (every brand when empty) and the request
func BuildRecipePrompt(cat *catalog.Catalog, brand, request string) (string, error) {
	brands := cat.Brands()
	if brand != "" {
		if !cat.HasBrand(brand) {
			return "", fmt.Errorf("unknown brand %q", brand)
		}
		brands = []string{brand}
	}

	var sb strings.Builder
	sb.WriteString("You are a professional hair colorist. Suggest the best hair color recipe using only the products listed below.\n\n")
	sb.WriteString("Available color products:\n")
	for _, b := range brands {
		pigments := cat.Pigments(b)
		if len(pigments) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "[%s]\n", pigments[0].Brand)
		for _, p := range pigments {
			fmt.Fprintf(&sb, "- %s: %s rgb(%d,%d,%d)\n", p.Code, p.Hex, p.RGB.R, p.RGB.G, p.RGB.B)
		}
	}

	sb.WriteString("\nClient request:\n")
	sb.WriteString(strings.TrimSpace(request))
	sb.WriteString("\n\nAnswer with these sections, each starting on its own line:\n")
	fmt.Fprintf(&sb, "%s: recommended products and mixing ratios (ratios sum to 100)\n", sectionFormula)
	fmt.Fprintf(&sb, "%s: the expected finish\n", sectionResult)
	fmt.Fprintf(&sb, "%s: points to watch out for\n", sectionCautions)
	fmt.Fprintf(&sb, "%s: a prompt for an AI image generator showing the result\n", sectionImagePrompt)
	return sb.String(), nil
}

// ParseRecipeAdvice splits generator text into its sections
// Text without recognised headings is kept whole in Text only
func ParseRecipeAdvice(text string) models.RecipeAdvice {
	advice := models.RecipeAdvice{Text: text, CreatedAt: time.Now()}

	sections := map[string]*strings.Builder{}
	var current *strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if name, rest, ok := sectionHeading(line); ok {
			current = &strings.Builder{}
			sections[name] = current
			if rest != "" {
				current.WriteString(rest)
			}
			continue
		}
		if current != nil {
			if current.Len() > 0 {
				current.WriteByte('\n')
			}
			current.WriteString(line)
		}
	}

	get := func(name string) string {
		if b, ok := sections[name]; ok {
			return strings.TrimSpace(b.String())
		}
		return ""
	}
	advice.Formula = get(sectionFormula)
	advice.Result = get(sectionResult)
	advice.Cautions = get(sectionCautions)
	advice.ImagePrompt = get(sectionImagePrompt)
	return advice
}

// sectionHeading recognises "Formula: ...", "1. Formula:", "**Formula**" and "## Formula"
func sectionHeading(line string) (string, string, bool) {
	l := strings.TrimSpace(line)
	l = strings.TrimLeft(l, "#*-0123456789. ")
	for _, name := range []string{sectionFormula, sectionResult, sectionCautions, sectionImagePrompt} {
		if len(l) < len(name) || !strings.EqualFold(l[:len(name)], name) {
			continue
		}
		rest := strings.TrimLeft(l[len(name):], "*")
		if rest != "" && rest[0] != ':' {
			continue
		}
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		return name, strings.TrimSpace(strings.Trim(rest, "*")), true
	}
	return "", "", false
}
