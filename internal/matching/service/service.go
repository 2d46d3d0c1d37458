package service

import (
	"context"

	"designhub_backend/internal/matching/transport"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SubmitQuizResponse is the result of a quiz submission.
type SubmitQuizResponse struct {
	User            UserSummary  `json:"user"`
	Match           *MatchResult `json:"match"`
	MatchPercentage int          `json:"matchPercentage"`
	StyleAnalysis   string       `json:"styleAnalysis"`
}

// UserMatchesResponse is the full ranked match list for a user.
type UserMatchesResponse struct {
	HasQuizData   bool              `json:"hasQuizData"`
	QuizData      map[string]string `json:"quizData,omitempty"`
	StyleAnalysis string            `json:"styleAnalysis,omitempty"`
	Matches       []MatchResult     `json:"matches"`
	TopMatch      *MatchResult      `json:"topMatch,omitempty"`
	MatchingStats MatchingStats     `json:"matchingStats"`
}

// RecommendationsResponse is the stateless recommendation result.
type RecommendationsResponse struct {
	Recommendations []MatchResult `json:"recommendations"`
	MatchingStats   MatchingStats `json:"matchingStats"`
}

// UpdateQuizResponse is the result of a partial quiz update.
type UpdateQuizResponse struct {
	QuizData      map[string]string `json:"quizData"`
	StyleAnalysis string            `json:"styleAnalysis"`
}

// UserSummary is the projection of the requesting user the match
// engine needs: existence, identity, and the stored quiz answers.
type UserSummary struct {
	ID        uuid.UUID         `json:"id"`
	FullName  string            `json:"fullName"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	StyleQuiz map[string]string `json:"styleQuiz"`
}

// UserDirectory is the read/write view over user records the match
// engine depends on. Implemented by an adapter over the users module.
type UserDirectory interface {
	// GetUser returns the user summary; NotFound if the user is absent.
	GetUser(ctx context.Context, id uuid.UUID) (UserSummary, error)
	// ListDesigners returns every designer profile in stable retrieval order.
	ListDesigners(ctx context.Context) ([]DesignerProfile, error)
	// ReplaceQuiz overwrites the stored quiz-answer map wholesale.
	ReplaceQuiz(ctx context.Context, id uuid.UUID, answers map[string]string) error
	// MergeQuiz merges keys into the stored map and returns the result.
	MergeQuiz(ctx context.Context, id uuid.UUID, answers map[string]string) (map[string]string, error)
}

// Service orchestrates scoring, analysis, and quiz persistence.
type Service struct {
	dir UserDirectory
	log *logger.Logger
}

// New creates a matching service.
func New(dir UserDirectory, log *logger.Logger) *Service {
	return &Service{dir: dir, log: log}
}

// SubmitQuiz stores the answers on the user (wholesale replace) and
// returns the best match plus the style analysis.
func (s *Service) SubmitQuiz(ctx context.Context, userID uuid.UUID, answers QuizAnswers) (SubmitQuizResponse, error) {
	if userID == uuid.Nil || len(answers) == 0 {
		return SubmitQuizResponse{}, apperr.Validation("userId and answers are required")
	}

	user, err := s.dir.GetUser(ctx, userID)
	if err != nil {
		return SubmitQuizResponse{}, err
	}

	// Submission replaces the stored map wholesale; merging is the
	// update operation's job.
	if err := s.dir.ReplaceQuiz(ctx, userID, answers); err != nil {
		return SubmitQuizResponse{}, err
	}
	user.StyleQuiz = answers

	pool, err := s.dir.ListDesigners(ctx)
	if err != nil {
		return SubmitQuizResponse{}, err
	}

	set := ComputeMatches(answers, pool)

	matchPercentage := 0
	if set.TopMatch != nil {
		matchPercentage = set.TopMatch.CompatibilityPercentage
	}

	s.log.Info("style quiz submitted", "userId", userID, "designers", len(pool), "topScore", matchPercentage)

	return SubmitQuizResponse{
		User:            user,
		Match:           set.TopMatch,
		MatchPercentage: matchPercentage,
		StyleAnalysis:   set.StyleAnalysis,
	}, nil
}

// GetUserMatches recomputes the full ranked match list from the user's
// stored quiz answers.
func (s *Service) GetUserMatches(ctx context.Context, userID uuid.UUID) (UserMatchesResponse, error) {
	if userID == uuid.Nil {
		return UserMatchesResponse{}, apperr.Validation("userId is required")
	}

	var (
		user UserSummary
		pool []DesignerProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.dir.GetUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		pool, err = s.dir.ListDesigners(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return UserMatchesResponse{}, err
	}

	if len(user.StyleQuiz) == 0 {
		return UserMatchesResponse{
			HasQuizData: false,
			Matches:     []MatchResult{},
		}, nil
	}

	set := ComputeMatches(user.StyleQuiz, pool)

	return UserMatchesResponse{
		HasQuizData:   true,
		QuizData:      user.StyleQuiz,
		StyleAnalysis: set.StyleAnalysis,
		Matches:       set.Matches,
		TopMatch:      set.TopMatch,
		MatchingStats: set.Stats,
	}, nil
}

// GetStyleRecommendations is the stateless variant: it ranks designers
// against ad-hoc criteria without reading or writing any quiz state.
// With multiple tones, a designer's score is the best across them.
func (s *Service) GetStyleRecommendations(ctx context.Context, req transport.RecommendationsRequest) (RecommendationsResponse, error) {
	if req.Style == "" {
		return RecommendationsResponse{}, apperr.Validation("style is required")
	}

	pool, err := s.dir.ListDesigners(ctx)
	if err != nil {
		return RecommendationsResponse{}, err
	}

	tones := req.Tones
	if len(tones) == 0 {
		tones = []string{""}
	}

	best := MatchSet{}
	for i, tone := range tones {
		answers := QuizAnswers{KeyStyle: req.Style}
		if tone != "" {
			answers[KeyTone] = tone
		}
		if req.Approach != "" {
			answers[KeyFunction] = req.Approach
		}

		set := ComputeMatches(answers, pool)
		if i == 0 || topScore(set) > topScore(best) {
			best = set
		}
	}

	return RecommendationsResponse{
		Recommendations: best.Matches,
		MatchingStats:   best.Stats,
	}, nil
}

// UpdateQuiz merges partial answers into the user's stored map. New
// keys extend it, existing keys are overwritten, untouched keys stay.
func (s *Service) UpdateQuiz(ctx context.Context, userID uuid.UUID, answers QuizAnswers) (UpdateQuizResponse, error) {
	if userID == uuid.Nil || len(answers) == 0 {
		return UpdateQuizResponse{}, apperr.Validation("userId and answers are required")
	}

	merged, err := s.dir.MergeQuiz(ctx, userID, answers)
	if err != nil {
		return UpdateQuizResponse{}, err
	}

	s.log.Info("style quiz updated", "userId", userID, "mergedKeys", len(answers))

	return UpdateQuizResponse{
		QuizData:      merged,
		StyleAnalysis: GenerateAnalysis(merged),
	}, nil
}

func topScore(set MatchSet) int {
	if set.TopMatch == nil {
		return -1
	}
	return set.TopMatch.Score
}
