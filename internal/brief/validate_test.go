package brief

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBrief() *ProducerBrief {
	return &ProducerBrief{
		Title:              "Launch Week",
		ExperienceOverview: "A five-card teaser for the new product line.",
		VisualDirection:    "Warm, handheld, golden hour.",
		AICharacter:        &AICharacter{Name: "Juno", Persona: "upbeat guide", VoiceStyle: "conversational"},
		SceneLock:          &SceneLock{Set: "rooftop studio", Camera: "35mm handheld", Lighting: "golden hour"},
		Stages: []Stage{
			{
				Number: 1,
				Title:  "Hook",
				Cards: []Card{
					{Number: 1, Title: "Opening", Copy: "Something big is coming.", Visual: "skyline", DurationSeconds: 4},
					{Number: 2, Title: "Tease", Copy: "You asked. We built it.", Visual: "close-up", DurationSeconds: 5},
				},
				Checkpoint: "brand lockup visible",
			},
			{
				Number: 2,
				Title:  "Reveal",
				Cards: []Card{
					{Number: 3, Title: "Product", Copy: "Meet the new lineup.", Visual: "hero shot", DurationSeconds: 6},
				},
			},
		},
		TotalCardCount: 3,
		StrictMode:     true,
	}
}

func TestValidate_FullyPopulatedBriefPasses(t *testing.T) {
	b := validBrief()
	result := Validate(b)

	require.True(t, result.OK(), "errors: %v", result.Errors)
	assert.Empty(t, result.Warnings)
	// No field loss: the result references the same document.
	assert.Same(t, b, result.Brief)
}

func TestValidate_StageWithoutCards(t *testing.T) {
	b := validBrief()
	b.Stages[1].Cards = nil
	b.TotalCardCount = 2

	result := Validate(b)

	require.False(t, result.OK())
	assert.Equal(t, "stages[1].cards", result.Errors[0].Field)
}

func TestValidate_MissingTitle(t *testing.T) {
	b := validBrief()
	b.Title = ""

	result := Validate(b)

	require.False(t, result.OK())
	assert.Equal(t, "title", result.Errors[0].Field)
}

func TestValidate_CardCountMismatch(t *testing.T) {
	testCases := []struct {
		name       string
		strict     bool
		wantErrors int
		wantWarns  int
	}{
		{"strict mode escalates to error", true, 1, 0},
		{"non-strict mode stays a warning", false, 0, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBrief()
			b.StrictMode = tc.strict
			b.TotalCardCount = 7

			result := Validate(b)

			assert.Len(t, result.Errors, tc.wantErrors)
			assert.Len(t, result.Warnings, tc.wantWarns)
			if tc.wantErrors > 0 {
				assert.Equal(t, "total_card_count", result.Errors[0].Field)
			}
		})
	}
}

func TestValidate_CharacterNeedsName(t *testing.T) {
	b := validBrief()
	b.AICharacter = &AICharacter{Persona: "nameless narrator"}

	result := Validate(b)

	require.False(t, result.OK())
	assert.Equal(t, "ai_character.name", result.Errors[0].Field)
}

func TestValidate_EmptySceneLockWarns(t *testing.T) {
	b := validBrief()
	b.SceneLock = &SceneLock{}

	result := Validate(b)

	require.True(t, result.OK())
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "scene_lock", result.Warnings[0].Field)
}

func TestValidate_MissingDurationWarns(t *testing.T) {
	b := validBrief()
	b.Stages[0].Cards[0].DurationSeconds = 0

	result := Validate(b)

	require.True(t, result.OK())
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "stages[0].cards[0].duration_seconds", result.Warnings[0].Field)
}
