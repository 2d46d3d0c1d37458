package service

import (
	"context"
	"testing"

	"designhub_backend/internal/matching/transport"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

// fakeDirectory is an in-memory UserDirectory for service tests.
type fakeDirectory struct {
	users     map[uuid.UUID]UserSummary
	designers []DesignerProfile
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[uuid.UUID]UserSummary)}
}

func (f *fakeDirectory) GetUser(_ context.Context, id uuid.UUID) (UserSummary, error) {
	u, ok := f.users[id]
	if !ok {
		return UserSummary{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeDirectory) ListDesigners(_ context.Context) ([]DesignerProfile, error) {
	return f.designers, nil
}

func (f *fakeDirectory) ReplaceQuiz(_ context.Context, id uuid.UUID, answers map[string]string) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.StyleQuiz = answers
	f.users[id] = u
	return nil
}

func (f *fakeDirectory) MergeQuiz(_ context.Context, id uuid.UUID, answers map[string]string) (map[string]string, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	merged := make(map[string]string, len(u.StyleQuiz)+len(answers))
	for k, v := range u.StyleQuiz {
		merged[k] = v
	}
	for k, v := range answers {
		merged[k] = v
	}
	u.StyleQuiz = merged
	f.users[id] = u
	return merged, nil
}

func newTestService(dir *fakeDirectory) *Service {
	return New(dir, logger.New("test"))
}

func seedClient(dir *fakeDirectory) uuid.UUID {
	id := uuid.New()
	dir.users[id] = UserSummary{ID: id, FullName: "Asha Client", Email: "asha@example.com", Role: "client"}
	return id
}

func TestSubmitQuizReplacesStoredAnswers(t *testing.T) {
	dir := newFakeDirectory()
	id := seedClient(dir)
	dir.users[id] = UserSummary{
		ID: id, Role: "client",
		StyleQuiz: map[string]string{KeyStyle: "Rustic", KeyBudget: "low"},
	}
	dir.designers = []DesignerProfile{
		{ID: "d1", FullName: "Mira", Specialization: "Modern Minimalist", PreferredTones: []string{"Warm"}, Approach: "Functional"},
	}
	svc := newTestService(dir)

	answers := QuizAnswers{KeyStyle: "Modern", KeyTone: "Warm", KeyFunction: "Functional"}
	resp, err := svc.SubmitQuiz(context.Background(), id, answers)
	if err != nil {
		t.Fatalf("SubmitQuiz() error = %v", err)
	}

	// Submission replaces wholesale: the old budget key must be gone.
	stored := dir.users[id].StyleQuiz
	if len(stored) != 3 {
		t.Fatalf("stored quiz has %d keys, want 3 (replace, not merge): %v", len(stored), stored)
	}
	if _, ok := stored[KeyBudget]; ok {
		t.Fatal("old budget answer survived a wholesale replace")
	}

	if resp.Match == nil || resp.Match.Designer.ID != "d1" {
		t.Fatalf("Match = %+v, want designer d1", resp.Match)
	}
	if resp.MatchPercentage != 100 {
		t.Fatalf("MatchPercentage = %d, want 100", resp.MatchPercentage)
	}
	if resp.StyleAnalysis == "" {
		t.Fatal("StyleAnalysis should not be empty")
	}
}

func TestSubmitQuizUnknownUser(t *testing.T) {
	svc := newTestService(newFakeDirectory())

	_, err := svc.SubmitQuiz(context.Background(), uuid.New(), QuizAnswers{KeyStyle: "Modern"})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("SubmitQuiz() kind = %v, want NotFound", apperr.GetKind(err))
	}
}

func TestSubmitQuizValidation(t *testing.T) {
	svc := newTestService(newFakeDirectory())

	_, err := svc.SubmitQuiz(context.Background(), uuid.Nil, QuizAnswers{KeyStyle: "Modern"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("nil userID: kind = %v, want Validation", apperr.GetKind(err))
	}

	_, err = svc.SubmitQuiz(context.Background(), uuid.New(), QuizAnswers{})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("empty answers: kind = %v, want Validation", apperr.GetKind(err))
	}
}

func TestSubmitQuizEmptyDesignerPool(t *testing.T) {
	dir := newFakeDirectory()
	id := seedClient(dir)
	svc := newTestService(dir)

	resp, err := svc.SubmitQuiz(context.Background(), id, QuizAnswers{KeyStyle: "Modern"})
	if err != nil {
		t.Fatalf("SubmitQuiz() error = %v", err)
	}
	if resp.Match != nil {
		t.Fatalf("Match = %+v, want nil for an empty pool", resp.Match)
	}
	if resp.MatchPercentage != 0 {
		t.Fatalf("MatchPercentage = %d, want 0", resp.MatchPercentage)
	}
}

func TestGetUserMatchesWithoutQuizData(t *testing.T) {
	dir := newFakeDirectory()
	id := seedClient(dir)
	dir.designers = []DesignerProfile{{ID: "d1", Specialization: "Modern"}}
	svc := newTestService(dir)

	resp, err := svc.GetUserMatches(context.Background(), id)
	if err != nil {
		t.Fatalf("GetUserMatches() error = %v", err)
	}
	if resp.HasQuizData {
		t.Fatal("HasQuizData = true, want false for a user without a quiz")
	}
	if len(resp.Matches) != 0 {
		t.Fatalf("got %d matches, want 0 without quiz data", len(resp.Matches))
	}
}

func TestGetUserMatchesRecomputesFromStoredQuiz(t *testing.T) {
	dir := newFakeDirectory()
	id := seedClient(dir)
	dir.users[id] = UserSummary{
		ID: id, Role: "client",
		StyleQuiz: map[string]string{KeyStyle: "Modern", KeyTone: "Warm"},
	}
	dir.designers = []DesignerProfile{
		{ID: "d1", Specialization: "Rustic"},
		{ID: "d2", Specialization: "Modern Minimalist", PreferredTones: []string{"Warm"}},
	}
	svc := newTestService(dir)

	resp, err := svc.GetUserMatches(context.Background(), id)
	if err != nil {
		t.Fatalf("GetUserMatches() error = %v", err)
	}
	if !resp.HasQuizData {
		t.Fatal("HasQuizData = false, want true")
	}
	if resp.TopMatch == nil || resp.TopMatch.Designer.ID != "d2" {
		t.Fatalf("TopMatch = %+v, want designer d2", resp.TopMatch)
	}
	if resp.TopMatch.Score != 70 {
		t.Fatalf("top score = %d, want 70", resp.TopMatch.Score)
	}
	if resp.MatchingStats.TotalDesigners != 2 {
		t.Fatalf("TotalDesigners = %d, want 2", resp.MatchingStats.TotalDesigners)
	}
}

func TestGetStyleRecommendationsBestTone(t *testing.T) {
	dir := newFakeDirectory()
	dir.designers = []DesignerProfile{
		{ID: "d1", Specialization: "Modern", PreferredTones: []string{"Cool"}},
		{ID: "d2", Specialization: "Modern", PreferredTones: []string{"Warm"}, Approach: "Functional"},
	}
	svc := newTestService(dir)

	resp, err := svc.GetStyleRecommendations(context.Background(), transport.RecommendationsRequest{
		Style:    "Modern",
		Tones:    []string{"Neutral", "Warm"},
		Approach: "Functional",
	})
	if err != nil {
		t.Fatalf("GetStyleRecommendations() error = %v", err)
	}

	// The Warm tone yields the better top score, so its ranking wins.
	if len(resp.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(resp.Recommendations))
	}
	top := resp.Recommendations[0]
	if top.Designer.ID != "d2" || top.Score != 100 {
		t.Fatalf("top recommendation = %s/%d, want d2/100", top.Designer.ID, top.Score)
	}
}

func TestGetStyleRecommendationsRequiresStyle(t *testing.T) {
	svc := newTestService(newFakeDirectory())

	_, err := svc.GetStyleRecommendations(context.Background(), transport.RecommendationsRequest{})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want Validation", apperr.GetKind(err))
	}
}

func TestUpdateQuizMergesAnswers(t *testing.T) {
	dir := newFakeDirectory()
	id := seedClient(dir)
	dir.users[id] = UserSummary{
		ID: id, Role: "client",
		StyleQuiz: map[string]string{KeyStyle: "Rustic", KeyTone: "Warm"},
	}
	svc := newTestService(dir)

	resp, err := svc.UpdateQuiz(context.Background(), id, QuizAnswers{KeyStyle: "Modern", KeyBudget: "Rs. 50,000"})
	if err != nil {
		t.Fatalf("UpdateQuiz() error = %v", err)
	}

	// Existing key overwritten, new key added, untouched key kept.
	if resp.QuizData[KeyStyle] != "Modern" {
		t.Fatalf("style = %q, want overwritten to Modern", resp.QuizData[KeyStyle])
	}
	if resp.QuizData[KeyTone] != "Warm" {
		t.Fatalf("tone = %q, want untouched Warm", resp.QuizData[KeyTone])
	}
	if resp.QuizData[KeyBudget] != "Rs. 50,000" {
		t.Fatalf("budget = %q, want the new answer", resp.QuizData[KeyBudget])
	}

	if resp.StyleAnalysis != GenerateAnalysis(resp.QuizData) {
		t.Fatal("StyleAnalysis should be derived from the merged map")
	}
}

func TestUpdateQuizUnknownUser(t *testing.T) {
	svc := newTestService(newFakeDirectory())

	_, err := svc.UpdateQuiz(context.Background(), uuid.New(), QuizAnswers{KeyStyle: "Modern"})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want NotFound", apperr.GetKind(err))
	}
}
