// Package service implements the style-compatibility matching engine:
// quiz scoring, style analysis generation, and designer ranking.
package service

import "strings"

// Semantic quiz answer keys. Unknown keys are persisted verbatim but
// never scored.
const (
	KeyStyle    = "2" // preferred interior style
	KeyMood     = "3" // mood preference
	KeyTone     = "4" // preferred color tone
	KeyFunction = "5" // functional vs decorative
	KeyTimeline = "6" // timeline preference
	KeyBudget   = "7" // budget range
)

// Scoring weights. Fixed constants; they sum to 100, which is what
// makes the compatibility percentage numerically equal to the score.
const (
	weightStyle    = 40
	weightTone     = 30
	weightApproach = 30
)

// QuizAnswers maps question keys to the client's free-text answers.
type QuizAnswers map[string]string

// DesignerProfile is the subset of a designer's record the match
// engine needs, plus public presentation fields carried through to
// responses. Read-only to this package.
type DesignerProfile struct {
	ID             string   `json:"id"`
	FullName       string   `json:"fullName"`
	Specialization string   `json:"specialization"`
	PreferredTones []string `json:"preferredTones"`
	Approach       string   `json:"approach"`
	Availability   bool     `json:"availability"`
	ProfilePic     *string  `json:"profilePic,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	Experience     *int     `json:"experience,omitempty"`
}

// Score computes the compatibility score between a client's quiz
// answers and a designer profile. The result is the sum of three
// independent all-or-nothing contributions, so it is always one of
// {0, 30, 40, 60, 70, 90, 100}. Missing answers or profile fields are
// non-matches, never errors.
func Score(answers QuizAnswers, designer DesignerProfile) int {
	score := 0
	if styleMatches(answers[KeyStyle], designer.Specialization) {
		score += weightStyle
	}
	if toneMatches(answers[KeyTone], designer.PreferredTones) {
		score += weightTone
	}
	if approachMatches(answers[KeyFunction], designer.Approach) {
		score += weightApproach
	}
	return score
}

// styleMatches reports whether the designer's specialization contains
// the preferred style, case-insensitively. Both sides must be non-empty.
func styleMatches(style, specialization string) bool {
	if style == "" || specialization == "" {
		return false
	}
	return strings.Contains(strings.ToLower(specialization), strings.ToLower(style))
}

// toneMatches reports whether any preferred tone equals the answer,
// case-insensitively.
func toneMatches(tone string, preferredTones []string) bool {
	if tone == "" || len(preferredTones) == 0 {
		return false
	}
	want := strings.ToLower(tone)
	for _, t := range preferredTones {
		if strings.ToLower(t) == want {
			return true
		}
	}
	return false
}

// approachMatches requires an exact case-insensitive match, not a
// substring.
func approachMatches(preference, approach string) bool {
	if preference == "" || approach == "" {
		return false
	}
	return strings.EqualFold(preference, approach)
}
