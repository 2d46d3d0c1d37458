package service

import (
	"fmt"
	"strings"
)

// Special timeline answer that gets its own sentence.
const timelineFlexible = "Flexible, as long as it's perfect"

// GenerateAnalysis builds a human-readable narrative from the quiz
// answers: one sentence per present key, in key order 2..7, joined by
// spaces. Any subset of keys, including none, produces a defined
// string.
func GenerateAnalysis(answers QuizAnswers) string {
	var sentences []string

	if style, ok := answers[KeyStyle]; ok && style != "" {
		sentences = append(sentences, fmt.Sprintf("You like the %s style.", style))
	}

	if mood, ok := answers[KeyMood]; ok && mood != "" {
		switch mood {
		case "Calm and simple":
			sentences = append(sentences, "You prefer a calm and understated mood in your space.")
		case "Bold and unique":
			sentences = append(sentences, "You gravitate toward bold, statement-making interiors.")
		default:
			sentences = append(sentences, "You enjoy a mix of calm and bold elements.")
		}
	}

	if tone, ok := answers[KeyTone]; ok && tone != "" {
		sentences = append(sentences, fmt.Sprintf("You are drawn to %s color tones.", tone))
	}

	if function, ok := answers[KeyFunction]; ok && function != "" {
		lowered := strings.ToLower(function)
		switch {
		case strings.Contains(lowered, "functional"):
			sentences = append(sentences, "Functionality comes first for you.")
		case strings.Contains(lowered, "decorative"):
			sentences = append(sentences, "You love decorative touches and visual richness.")
		default:
			sentences = append(sentences, "You balance function and decoration.")
		}
	}

	if timeline, ok := answers[KeyTimeline]; ok && timeline != "" {
		if timeline == timelineFlexible {
			sentences = append(sentences, "You value getting it right over getting it fast.")
		} else {
			sentences = append(sentences, fmt.Sprintf("You want your project done %s.", strings.ToLower(timeline)))
		}
	}

	if budget, ok := answers[KeyBudget]; ok && budget != "" {
		sentences = append(sentences, fmt.Sprintf("Your budget range is %s.", budget))
	}

	return strings.Join(sentences, " ")
}
