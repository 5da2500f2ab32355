package brief

import "regexp"

// Section markers. These patterns locate the brief's sections inside the
// semi-structured markdown produced by the authoring tools. Downstream
// parsers key on the exact same heading text, so the marker wording must not
// change without coordinating with the pipeline.
var (
	titleMarker     = regexp.MustCompile(`(?m)^#\s+(.+?)\s*$`)
	overviewMarker  = regexp.MustCompile(`(?m)^#{2,3}\s*Experience Overview\s*$`)
	visualMarker    = regexp.MustCompile(`(?m)^#{2,3}\s*Visual Direction\s*$`)
	characterMarker = regexp.MustCompile(`(?m)^#{2,3}\s*AI Character\s*$`)
	breakdownMarker = regexp.MustCompile(`(?m)^#{2,3}\s*Stage Breakdown\s*$`)

	// Stage headers look like "### Stage 2: The Reveal".
	stageHeaderMarker = regexp.MustCompile(`(?m)^#{3,4}\s*Stage\s+(\d+)\s*:\s*(.+?)\s*$`)

	// Card table rows: | n | title | copy | visual | duration |
	cardRowMarker = regexp.MustCompile(`(?m)^\|\s*(\d+)\s*\|([^|]*)\|([^|]*)\|([^|]*)\|([^|]*)\|\s*$`)

	// Checkpoint markers appear as blockquotes inside a stage.
	checkpointMarker = regexp.MustCompile(`(?m)^>\s*CHECKPOINT:\s*(.+?)\s*$`)

	// Document-level directives.
	totalCardsMarker = regexp.MustCompile(`(?m)^Total Cards:\s*(\d+)\s*$`)
	strictModeMarker = regexp.MustCompile(`(?m)^Strict Mode:\s*(true|false)\s*$`)

	// AI character and scene lock attributes, e.g. "- Name: Juno".
	attrMarker = regexp.MustCompile(`(?m)^-\s*([A-Za-z ]+?)\s*:\s*(.+?)\s*$`)
)
