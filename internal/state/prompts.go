package state

import (
	"math/rand/v2"
)

var prompts = []Prompt{
	{ID: "1", Text: "What made you smile today?", Category: CategoryGratitude},
	{ID: "2", Text: "Describe a challenge you faced recently and what you learned from it.", Category: CategoryReflection},
	{ID: "3", Text: "If you could give advice to your younger self, what would it be?", Category: CategoryReflection},
	{ID: "4", Text: "What are three things you're grateful for today?", Category: CategoryGratitude},
	{ID: "5", Text: "Describe your ideal day. What would you do?", Category: CategoryCreativity},
	{ID: "6", Text: "What's one small step you can take today toward a goal that matters to you?", Category: CategoryCareer},
	{ID: "7", Text: "Reflect on a conversation that impacted you recently. What made it meaningful?", Category: CategoryRelationships},
	{ID: "8", Text: "How did you take care of your physical or mental health today?", Category: CategoryHealth},
	{ID: "9", Text: "What's something you're looking forward to in the coming weeks?", Category: CategoryReflection},
	{ID: "10", Text: "Describe a place that makes you feel peaceful. What do you love about it?", Category: CategoryReflection},
}

// RandomPrompt picks a writing prompt. A nil rng uses the global source.
func RandomPrompt(rng *rand.Rand) Prompt {
	if rng == nil {
		return prompts[rand.IntN(len(prompts))]
	}
	return prompts[rng.IntN(len(prompts))]
}

// PromptsByCategory returns the prompts of one category in catalog order.
func PromptsByCategory(c PromptCategory) []Prompt {
	var out []Prompt
	for _, p := range prompts {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}
