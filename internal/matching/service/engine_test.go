package service

import "testing"

func TestComputeMatchesRankingAndStats(t *testing.T) {
	answers := QuizAnswers{
		KeyStyle:    "Modern",
		KeyTone:     "Warm",
		KeyFunction: "Functional",
	}
	pool := []DesignerProfile{
		{ID: "low", FullName: "Low", Specialization: "Rustic", PreferredTones: []string{"Cool"}, Approach: "Decorative"},
		{ID: "perfect", FullName: "Perfect", Specialization: "Modern Minimalist", PreferredTones: []string{"Warm"}, Approach: "Functional"},
		{ID: "fair", FullName: "Fair", Specialization: "Modern", PreferredTones: []string{"Cool"}, Approach: "Decorative"},
		{ID: "good", FullName: "Good", Specialization: "Modern", PreferredTones: []string{"Warm"}, Approach: "Decorative"},
	}

	set := ComputeMatches(answers, pool)

	if len(set.Matches) != 4 {
		t.Fatalf("got %d matches, want 4", len(set.Matches))
	}
	wantOrder := []string{"perfect", "good", "fair", "low"}
	for i, want := range wantOrder {
		if set.Matches[i].Designer.ID != want {
			t.Fatalf("rank %d = %s, want %s", i, set.Matches[i].Designer.ID, want)
		}
	}

	if set.TopMatch == nil || set.TopMatch.Designer.ID != "perfect" {
		t.Fatalf("TopMatch = %+v, want the perfect designer", set.TopMatch)
	}
	if set.TopMatch.Score != 100 || set.TopMatch.CompatibilityPercentage != 100 {
		t.Fatalf("top score/percentage = %d/%d, want 100/100",
			set.TopMatch.Score, set.TopMatch.CompatibilityPercentage)
	}

	want := MatchingStats{TotalDesigners: 4, Perfect: 1, Good: 1, Fair: 1, Low: 1}
	if set.Stats != want {
		t.Fatalf("Stats = %+v, want %+v", set.Stats, want)
	}
}

func TestComputeMatchesStatsPartitionPool(t *testing.T) {
	answers := QuizAnswers{KeyStyle: "Modern", KeyTone: "Warm", KeyFunction: "Functional"}
	pool := []DesignerProfile{
		{ID: "a", Specialization: "Modern", PreferredTones: []string{"Warm"}, Approach: "Functional"},
		{ID: "b", Specialization: "Modern", PreferredTones: []string{"Warm"}, Approach: "Decorative"},
		{ID: "c", Specialization: "Rustic", PreferredTones: []string{"Warm"}, Approach: "Functional"},
		{ID: "d", Specialization: "Modern"},
		{ID: "e"},
		{ID: "f", Approach: "Functional"},
	}

	set := ComputeMatches(answers, pool)
	s := set.Stats
	if sum := s.Perfect + s.Good + s.Fair + s.Low; sum != s.TotalDesigners {
		t.Fatalf("tier counts sum to %d, want %d", sum, s.TotalDesigners)
	}
	if s.TotalDesigners != len(pool) {
		t.Fatalf("TotalDesigners = %d, want %d", s.TotalDesigners, len(pool))
	}
}

func TestComputeMatchesTiesKeepPoolOrder(t *testing.T) {
	answers := QuizAnswers{KeyStyle: "Modern"}
	pool := []DesignerProfile{
		{ID: "first", Specialization: "Modern"},
		{ID: "second", Specialization: "Modern Loft"},
		{ID: "third", Specialization: "Modern Rustic"},
	}

	set := ComputeMatches(answers, pool)
	for i, want := range []string{"first", "second", "third"} {
		if set.Matches[i].Designer.ID != want {
			t.Fatalf("tied rank %d = %s, want %s (stable order)", i, set.Matches[i].Designer.ID, want)
		}
	}
}

func TestComputeMatchesEmptyPool(t *testing.T) {
	set := ComputeMatches(QuizAnswers{KeyStyle: "Modern"}, nil)

	if len(set.Matches) != 0 {
		t.Fatalf("got %d matches for empty pool, want 0", len(set.Matches))
	}
	if set.TopMatch != nil {
		t.Fatalf("TopMatch = %+v, want nil for empty pool", set.TopMatch)
	}
	if set.Stats.TotalDesigners != 0 {
		t.Fatalf("TotalDesigners = %d, want 0", set.Stats.TotalDesigners)
	}
	if set.StyleAnalysis == "" {
		t.Fatal("StyleAnalysis should still be generated for an empty pool")
	}
}
