package service

import "testing"

func designer(spec string, tones []string, approach string) DesignerProfile {
	return DesignerProfile{
		ID:             "d1",
		FullName:       "Test Designer",
		Specialization: spec,
		PreferredTones: tones,
		Approach:       approach,
	}
}

func TestScoreFullMatch(t *testing.T) {
	answers := QuizAnswers{
		KeyStyle:    "Modern",
		KeyTone:     "Warm",
		KeyFunction: "Functional",
	}
	d := designer("Modern Minimalist", []string{"Warm", "Neutral"}, "Functional")

	if got := Score(answers, d); got != 100 {
		t.Fatalf("Score() = %d, want 100", got)
	}
}

func TestScoreNoMatch(t *testing.T) {
	answers := QuizAnswers{
		KeyStyle:    "Modern",
		KeyTone:     "Warm",
		KeyFunction: "Functional",
	}
	d := designer("Rustic", []string{"Cool"}, "Decorative")

	if got := Score(answers, d); got != 0 {
		t.Fatalf("Score() = %d, want 0", got)
	}
}

func TestScorePartialCombinations(t *testing.T) {
	tests := []struct {
		name     string
		answers  QuizAnswers
		designer DesignerProfile
		want     int
	}{
		{
			name:     "style only",
			answers:  QuizAnswers{KeyStyle: "modern"},
			designer: designer("Modern Minimalist", []string{"Cool"}, "Decorative"),
			want:     40,
		},
		{
			name:     "tone only",
			answers:  QuizAnswers{KeyTone: "warm"},
			designer: designer("Rustic", []string{"Warm"}, "Decorative"),
			want:     30,
		},
		{
			name:     "approach only",
			answers:  QuizAnswers{KeyFunction: "functional"},
			designer: designer("Rustic", []string{"Cool"}, "Functional"),
			want:     30,
		},
		{
			name:     "style and tone",
			answers:  QuizAnswers{KeyStyle: "Modern", KeyTone: "Warm"},
			designer: designer("modern loft", []string{"warm"}, "Decorative"),
			want:     70,
		},
		{
			name:     "style and approach",
			answers:  QuizAnswers{KeyStyle: "Modern", KeyFunction: "Balanced"},
			designer: designer("Modern", nil, "balanced"),
			want:     70,
		},
		{
			name:     "tone and approach",
			answers:  QuizAnswers{KeyTone: "Neutral", KeyFunction: "Functional"},
			designer: designer("Rustic", []string{"Neutral"}, "Functional"),
			want:     60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.answers, tt.designer); got != tt.want {
				t.Fatalf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreAlwaysInValueSet(t *testing.T) {
	valid := map[int]bool{0: true, 30: true, 40: true, 60: true, 70: true, 90: true, 100: true}

	styles := []string{"", "Modern", "Rustic"}
	tones := []string{"", "Warm", "Cool"}
	approaches := []string{"", "Functional", "Decorative"}

	d := designer("Modern Minimalist", []string{"Warm"}, "Functional")
	for _, s := range styles {
		for _, tn := range tones {
			for _, a := range approaches {
				got := Score(QuizAnswers{KeyStyle: s, KeyTone: tn, KeyFunction: a}, d)
				if !valid[got] {
					t.Fatalf("Score(%q,%q,%q) = %d, not in the reachable value set", s, tn, a, got)
				}
			}
		}
	}
}

func TestStyleMatchIsSubstring(t *testing.T) {
	d := designer("Contemporary Modern Minimalist", nil, "")
	if got := Score(QuizAnswers{KeyStyle: "modern"}, d); got != 40 {
		t.Fatalf("substring style match failed, Score() = %d, want 40", got)
	}
}

func TestApproachMatchIsExact(t *testing.T) {
	// "Function" must not substring-match "Functional".
	d := designer("", nil, "Functional")
	if got := Score(QuizAnswers{KeyFunction: "Function"}, d); got != 0 {
		t.Fatalf("approach should require exact match, Score() = %d, want 0", got)
	}
	if got := Score(QuizAnswers{KeyFunction: "fUnCtIoNaL"}, d); got != 30 {
		t.Fatalf("approach should be case-insensitive, Score() = %d, want 30", got)
	}
}

func TestScoreMissingFieldsAreNonMatches(t *testing.T) {
	// Empty answers and empty profile fields never match and never error.
	if got := Score(QuizAnswers{}, designer("", nil, "")); got != 0 {
		t.Fatalf("Score(empty, empty) = %d, want 0", got)
	}
	if got := Score(nil, designer("Modern", []string{"Warm"}, "Functional")); got != 0 {
		t.Fatalf("Score(nil, populated) = %d, want 0", got)
	}
}
