// Package brief defines the producer brief document: the structured plan the
// content-generation pipeline consumes. It provides the schema types, a
// validator that reports problems as data rather than failing outright, and
// a parser that extracts a brief from the semi-structured markdown the
// authoring tools emit.
package brief

// ProducerBrief describes a full content-generation plan.
type ProducerBrief struct {
	Title              string       `json:"title"`
	ExperienceOverview string       `json:"experience_overview,omitempty"`
	VisualDirection    string       `json:"visual_direction,omitempty"`
	AICharacter        *AICharacter `json:"ai_character,omitempty"`
	SceneLock          *SceneLock   `json:"scene_lock,omitempty"`
	Stages             []Stage      `json:"stages"`
	TotalCardCount     int          `json:"total_card_count"`
	StrictMode         bool         `json:"strict_mode"`
}

// Stage groups the cards produced for one segment of the experience.
type Stage struct {
	Number     int    `json:"number"`
	Title      string `json:"title"`
	Cards      []Card `json:"cards"`
	Checkpoint string `json:"checkpoint,omitempty"`
}

// Card is a single generated content unit.
type Card struct {
	Number          int    `json:"number"`
	Title           string `json:"title"`
	Copy            string `json:"copy"`
	Visual          string `json:"visual"`
	DurationSeconds int    `json:"duration_seconds"`
}

// AICharacter is the persona applied to generated narration.
type AICharacter struct {
	Name       string `json:"name"`
	Persona    string `json:"persona,omitempty"`
	VoiceStyle string `json:"voice_style,omitempty"`
}

// SceneLock pins visual continuity settings across all generated cards.
type SceneLock struct {
	Set      string `json:"set,omitempty"`
	Camera   string `json:"camera,omitempty"`
	Lighting string `json:"lighting,omitempty"`
}

// CardCount returns the number of cards across all stages.
func (b *ProducerBrief) CardCount() int {
	total := 0
	for _, stage := range b.Stages {
		total += len(stage.Cards)
	}
	return total
}

// Issue is a single validation finding, pointing at the offending field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result carries a brief together with everything the validator found.
// Errors mean the brief cannot be handed to the pipeline as-is; warnings are
// advisory and the consumer decides whether they are fatal.
type Result struct {
	Brief    *ProducerBrief `json:"brief,omitempty"`
	Warnings []Issue        `json:"warnings"`
	Errors   []Issue        `json:"errors"`
}

// OK reports whether the result carries no errors.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

func (r *Result) warnf(field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Field: field, Message: msg})
}

func (r *Result) errorf(field, msg string) {
	r.Errors = append(r.Errors, Issue{Field: field, Message: msg})
}
