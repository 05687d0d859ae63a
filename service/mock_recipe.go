package service

import (
	"context"
	"hash/fnv"
	"strings"
	"time"
)

// sampleRecipes are returned by MockRecipeGenerator
var sampleRecipes = []string{
	`Formula: 10GR 60%, 9SB 40%
Expected result: A soft, transparent ash beige with reduced red tones.
Cautions: On hair with strong orange undertones, pre-lighten to level 11 first.
Image prompt: Soft ash beige long hair, natural light, salon photo`,
	`Formula: 3-7 70%, 3-8 30%
Expected result: A gentle pink beige that fades to a warm beige.
Cautions: Pink fades quickly; recommend a color shampoo for home care.
Image prompt: Pink beige medium hair, soft waves, studio portrait`,
	`Formula: 2-2 50%, 1-4 30%, 1-2 20%
Expected result: A cool silver ash with a matte finish.
Cautions: Needs bleached hair at level 13 or higher for the silver to show.
Image prompt: Silver ash short hair, cool lighting, editorial photo`,
}

// MockRecipeGenerator returns one of the built-in sample recipes without calling any API
// The choice is stable for a given prompt
type MockRecipeGenerator struct {
	Delay time.Duration
}

func (m *MockRecipeGenerator) Name() string { return "mock" }

func (m *MockRecipeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	request := clientRequest(strings.ToLower(prompt))
	switch {
	case strings.Contains(request, "pink"):
		return sampleRecipes[1], nil
	case strings.Contains(request, "silver"):
		return sampleRecipes[2], nil
	case strings.Contains(request, "ash"):
		return sampleRecipes[0], nil
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	return sampleRecipes[int(h.Sum32())%len(sampleRecipes)], nil
}

// clientRequest returns the request part of a lowercased prompt built by BuildRecipePrompt
func clientRequest(prompt string) string {
	if i := strings.LastIndex(prompt, "client request:"); i >= 0 {
		prompt = prompt[i:]
	}
	if i := strings.Index(prompt, "\n\nanswer with"); i >= 0 {
		prompt = prompt[:i]
	}
	return prompt
}
