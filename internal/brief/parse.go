package brief

import (
	"regexp"
	"strconv"
	"strings"
)

var digitsMarker = regexp.MustCompile(`\d+`)

// Parse extracts a producer brief from semi-structured markdown and runs the
// validator over the extracted document. Parsing is lenient: sections that
// cannot be located are simply absent and surface as validation findings.
func Parse(text string) *Result {
	b := &ProducerBrief{}
	var parseWarnings []Issue

	if m := titleMarker.FindStringSubmatch(text); m != nil {
		b.Title = m[1]
	}

	if m := totalCardsMarker.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			b.TotalCardCount = n
		}
	}
	if m := strictModeMarker.FindStringSubmatch(text); m != nil {
		b.StrictMode = m[1] == "true"
	}

	starts := sectionStarts(text)

	if body, ok := sectionBody(text, overviewMarker, starts); ok {
		b.ExperienceOverview = strings.TrimSpace(body)
	}

	if body, ok := sectionBody(text, visualMarker, starts); ok {
		direction, lock := parseVisualDirection(body)
		b.VisualDirection = direction
		b.SceneLock = lock
	}

	if body, ok := sectionBody(text, characterMarker, starts); ok {
		b.AICharacter = parseCharacter(body)
	}

	if breakdownMarker.MatchString(text) {
		b.Stages = parseStages(text)
	} else {
		parseWarnings = append(parseWarnings, Issue{
			Field:   "stages",
			Message: "Stage Breakdown section not found",
		})
	}

	result := Validate(b)
	result.Warnings = append(parseWarnings, result.Warnings...)
	return result
}

// sectionStarts returns the byte offsets of every section heading, used to
// bound each section's body.
func sectionStarts(text string) []int {
	var starts []int
	for _, marker := range []*regexp.Regexp{overviewMarker, visualMarker, characterMarker, breakdownMarker, stageHeaderMarker} {
		for _, loc := range marker.FindAllStringIndex(text, -1) {
			starts = append(starts, loc[0])
		}
	}
	return starts
}

// sectionBody returns the text between the marker's heading and the next
// section heading (or end of document).
func sectionBody(text string, marker *regexp.Regexp, starts []int) (string, bool) {
	loc := marker.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	end := len(text)
	for _, start := range starts {
		if start > loc[1] && start < end {
			end = start
		}
	}
	return text[loc[1]:end], true
}

// parseVisualDirection splits a Visual Direction section into free-text
// direction and scene lock attributes.
func parseVisualDirection(body string) (string, *SceneLock) {
	lock := &SceneLock{}
	found := false

	var freeText []string
	for _, line := range strings.Split(body, "\n") {
		m := attrMarker.FindStringSubmatch(line)
		if m == nil {
			freeText = append(freeText, line)
			continue
		}
		switch strings.ToLower(m[1]) {
		case "set":
			lock.Set = m[2]
			found = true
		case "camera":
			lock.Camera = m[2]
			found = true
		case "lighting":
			lock.Lighting = m[2]
			found = true
		default:
			freeText = append(freeText, line)
		}
	}

	if !found {
		lock = nil
	}
	return strings.TrimSpace(strings.Join(freeText, "\n")), lock
}

func parseCharacter(body string) *AICharacter {
	ch := &AICharacter{}
	found := false

	for _, m := range attrMarker.FindAllStringSubmatch(body, -1) {
		switch strings.ToLower(m[1]) {
		case "name":
			ch.Name = m[2]
			found = true
		case "persona":
			ch.Persona = m[2]
			found = true
		case "voice style":
			ch.VoiceStyle = m[2]
			found = true
		}
	}

	if !found {
		return nil
	}
	return ch
}

func parseStages(text string) []Stage {
	headers := stageHeaderMarker.FindAllStringSubmatchIndex(text, -1)
	if headers == nil {
		return nil
	}

	stages := make([]Stage, 0, len(headers))
	for i, header := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		body := text[header[1]:end]

		number, _ := strconv.Atoi(text[header[2]:header[3]])
		stage := Stage{
			Number: number,
			Title:  text[header[4]:header[5]],
			Cards:  parseCards(body),
		}
		if m := checkpointMarker.FindStringSubmatch(body); m != nil {
			stage.Checkpoint = m[1]
		}
		stages = append(stages, stage)
	}
	return stages
}

func parseCards(body string) []Card {
	var cards []Card
	for _, m := range cardRowMarker.FindAllStringSubmatch(body, -1) {
		number, _ := strconv.Atoi(m[1])
		cards = append(cards, Card{
			Number:          number,
			Title:           strings.TrimSpace(m[2]),
			Copy:            strings.TrimSpace(m[3]),
			Visual:          strings.TrimSpace(m[4]),
			DurationSeconds: parseDuration(m[5]),
		})
	}
	return cards
}

// parseDuration pulls the first integer out of a duration cell ("6", "6s").
func parseDuration(cell string) int {
	m := digitsMarker.FindString(cell)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}
