package service

import (
	"strings"
	"testing"
)

func TestGenerateAnalysisAllKeys(t *testing.T) {
	answers := QuizAnswers{
		KeyStyle:    "Modern",
		KeyMood:     "Calm and simple",
		KeyTone:     "Warm",
		KeyFunction: "Functional spaces",
		KeyTimeline: "Within 3 months",
		KeyBudget:   "Rs. 50,000 - 1,00,000",
	}

	got := GenerateAnalysis(answers)
	want := "You like the Modern style. " +
		"You prefer a calm and understated mood in your space. " +
		"You are drawn to Warm color tones. " +
		"Functionality comes first for you. " +
		"You want your project done within 3 months. " +
		"Your budget range is Rs. 50,000 - 1,00,000."

	if got != want {
		t.Fatalf("GenerateAnalysis() = %q, want %q", got, want)
	}
}

func TestGenerateAnalysisEmpty(t *testing.T) {
	if got := GenerateAnalysis(QuizAnswers{}); got != "" {
		t.Fatalf("GenerateAnalysis(empty) = %q, want empty string", got)
	}
	if got := GenerateAnalysis(nil); got != "" {
		t.Fatalf("GenerateAnalysis(nil) = %q, want empty string", got)
	}
}

func TestGenerateAnalysisMoodVariants(t *testing.T) {
	tests := []struct {
		mood string
		want string
	}{
		{"Calm and simple", "You prefer a calm and understated mood in your space."},
		{"Bold and unique", "You gravitate toward bold, statement-making interiors."},
		{"Somewhere in between", "You enjoy a mix of calm and bold elements."},
	}
	for _, tt := range tests {
		got := GenerateAnalysis(QuizAnswers{KeyMood: tt.mood})
		if got != tt.want {
			t.Fatalf("mood %q: got %q, want %q", tt.mood, got, tt.want)
		}
	}
}

func TestGenerateAnalysisFunctionVariants(t *testing.T) {
	tests := []struct {
		function string
		want     string
	}{
		{"Highly functional", "Functionality comes first for you."},
		{"Decorative and rich", "You love decorative touches and visual richness."},
		{"A bit of both", "You balance function and decoration."},
	}
	for _, tt := range tests {
		got := GenerateAnalysis(QuizAnswers{KeyFunction: tt.function})
		if got != tt.want {
			t.Fatalf("function %q: got %q, want %q", tt.function, got, tt.want)
		}
	}
}

func TestGenerateAnalysisFlexibleTimeline(t *testing.T) {
	got := GenerateAnalysis(QuizAnswers{KeyTimeline: timelineFlexible})
	want := "You value getting it right over getting it fast."
	if got != want {
		t.Fatalf("flexible timeline: got %q, want %q", got, want)
	}

	got = GenerateAnalysis(QuizAnswers{KeyTimeline: "ASAP"})
	if got != "You want your project done asap." {
		t.Fatalf("non-flexible timeline should lowercase the answer, got %q", got)
	}
}

func TestGenerateAnalysisIgnoresUnknownAndEmptyKeys(t *testing.T) {
	answers := QuizAnswers{
		"1":      "ignored",
		"99":     "also ignored",
		KeyStyle: "",
		KeyTone:  "Cool",
	}
	got := GenerateAnalysis(answers)
	if got != "You are drawn to Cool color tones." {
		t.Fatalf("GenerateAnalysis() = %q, want the tone sentence only", got)
	}
	if strings.Contains(got, "ignored") {
		t.Fatalf("unknown keys leaked into the narrative: %q", got)
	}
}
