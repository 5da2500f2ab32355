package brief

import "fmt"

// Validate checks b against the brief schema and returns findings as data.
// The returned Result always references b, even when errors are present, so
// callers can inspect the partially valid document.
func Validate(b *ProducerBrief) *Result {
	result := &Result{Brief: b, Warnings: []Issue{}, Errors: []Issue{}}

	if b.Title == "" {
		result.errorf("title", "is required")
	}

	if len(b.Stages) == 0 {
		result.errorf("stages", "at least one stage is required")
	}

	for i, stage := range b.Stages {
		validateStage(result, i, stage)
	}

	if b.AICharacter != nil && b.AICharacter.Name == "" {
		result.errorf("ai_character.name", "is required when ai_character is present")
	}

	if b.SceneLock != nil {
		sl := b.SceneLock
		if sl.Set == "" && sl.Camera == "" && sl.Lighting == "" {
			result.warnf("scene_lock", "present but empty; visual continuity will not be enforced")
		}
	}

	if b.TotalCardCount > 0 {
		counted := b.CardCount()
		if counted != b.TotalCardCount {
			msg := fmt.Sprintf("declares %d cards but stages contain %d", b.TotalCardCount, counted)
			if b.StrictMode {
				result.errorf("total_card_count", msg)
			} else {
				result.warnf("total_card_count", msg)
			}
		}
	}

	return result
}

func validateStage(result *Result, i int, stage Stage) {
	path := fmt.Sprintf("stages[%d]", i)

	if stage.Title == "" {
		result.errorf(path+".title", "is required")
	}
	if len(stage.Cards) == 0 {
		result.errorf(path+".cards", "stage has no cards")
	}

	for j, card := range stage.Cards {
		cardPath := fmt.Sprintf("%s.cards[%d]", path, j)
		if card.Title == "" {
			result.errorf(cardPath+".title", "is required")
		}
		if card.Copy == "" {
			result.warnf(cardPath+".copy", "card has no copy")
		}
		if card.DurationSeconds <= 0 {
			result.warnf(cardPath+".duration_seconds", "missing or non-positive; default duration will apply")
		}
	}
}
