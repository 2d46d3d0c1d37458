package service

import (
	"context"
	"testing"

	"designhub_backend/internal/events"
	"designhub_backend/internal/reviews/repository"
	"designhub_backend/internal/reviews/transport"
	"designhub_backend/platform/apperr"
	"designhub_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	reviews map[uuid.UUID]repository.Review
	// keyed by project+client, mirrors the unique constraint
	byProjectClient map[string]uuid.UUID
	createAttempts  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reviews:         make(map[uuid.UUID]repository.Review),
		byProjectClient: make(map[string]uuid.UUID),
	}
}

func key(projectID, clientID uuid.UUID) string {
	return projectID.String() + "/" + clientID.String()
}

func (f *fakeStore) Create(_ context.Context, p repository.CreateParams) (repository.Review, error) {
	f.createAttempts++
	k := key(p.ProjectID, p.ClientID)
	if _, exists := f.byProjectClient[k]; exists {
		return repository.Review{}, apperr.Conflict("you have already reviewed this project")
	}
	r := repository.Review{
		ID:         uuid.New(),
		ProjectID:  p.ProjectID,
		ClientID:   p.ClientID,
		DesignerID: p.DesignerID,
		Rating:     p.Rating,
		Comment:    p.Comment,
		Status:     "active",
	}
	f.reviews[r.ID] = r
	f.byProjectClient[k] = r.ID
	return r, nil
}

func (f *fakeStore) ExistsForClient(_ context.Context, projectID, clientID uuid.UUID) (bool, error) {
	_, exists := f.byProjectClient[key(projectID, clientID)]
	return exists, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (repository.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return repository.Review{}, apperr.NotFound("review not found")
	}
	return r, nil
}

func (f *fakeStore) GetByProject(_ context.Context, projectID uuid.UUID) (repository.Review, error) {
	for _, r := range f.reviews {
		if r.ProjectID == projectID && r.Status == "active" {
			return r, nil
		}
	}
	return repository.Review{}, apperr.NotFound("no review for this project")
}

func (f *fakeStore) ListByDesigner(_ context.Context, designerID uuid.UUID, _, _ int) ([]repository.Review, repository.DesignerSummary, error) {
	var out []repository.Review
	sum := 0
	for _, r := range f.reviews {
		if r.DesignerID == designerID && r.Status == "active" {
			out = append(out, r)
			sum += r.Rating
		}
	}
	summary := repository.DesignerSummary{TotalReviews: len(out)}
	if len(out) > 0 {
		summary.AverageRating = float64(sum) / float64(len(out))
	}
	return out, summary, nil
}

func (f *fakeStore) Update(_ context.Context, id uuid.UUID, rating int, comment string) (repository.Review, error) {
	r, ok := f.reviews[id]
	if !ok || r.Status != "active" {
		return repository.Review{}, apperr.NotFound("review not found")
	}
	r.Rating = rating
	r.Comment = comment
	f.reviews[id] = r
	return r, nil
}

func (f *fakeStore) Hide(_ context.Context, id uuid.UUID) (repository.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return repository.Review{}, apperr.NotFound("review not found")
	}
	r.Status = "hidden"
	f.reviews[id] = r
	return r, nil
}

type fakeProjects struct {
	info ProjectInfo
	err  error
}

func (f *fakeProjects) GetProjectInfo(context.Context, uuid.UUID) (ProjectInfo, error) {
	return f.info, f.err
}

type fakeNames struct{}

func (fakeNames) GetFullName(context.Context, uuid.UUID) (string, error) { return "Asha Client", nil }

func newTestService(store *fakeStore, projects *fakeProjects) *Service {
	log := logger.New("test")
	return New(store, projects, fakeNames{}, events.NewInMemoryBus(log), log)
}

func completedProject(clientID, designerID uuid.UUID) *fakeProjects {
	return &fakeProjects{info: ProjectInfo{
		ID:         uuid.New(),
		Title:      "Kitchen remodel",
		ClientID:   clientID,
		DesignerID: designerID,
		Status:     "completed",
	}}
}

func TestCreateReview(t *testing.T) {
	clientID, designerID := uuid.New(), uuid.New()
	svc := newTestService(newFakeStore(), completedProject(clientID, designerID))

	review, err := svc.Create(context.Background(), clientID, uuid.New(), transport.CreateReviewRequest{
		Rating:  5,
		Comment: "Fantastic work on our kitchen.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if review.DesignerID != designerID {
		t.Fatalf("DesignerID = %s, want derived from project %s", review.DesignerID, designerID)
	}
	if review.Status != "active" {
		t.Fatalf("Status = %q, want active", review.Status)
	}
}

func TestCreateReviewRejectsNonClient(t *testing.T) {
	svc := newTestService(newFakeStore(), completedProject(uuid.New(), uuid.New()))

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), transport.CreateReviewRequest{Rating: 4, Comment: "Nice"})
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("kind = %v, want Forbidden for a non-client reviewer", apperr.GetKind(err))
	}
}

func TestCreateReviewRequiresCompletedProject(t *testing.T) {
	clientID := uuid.New()
	projects := &fakeProjects{info: ProjectInfo{ClientID: clientID, DesignerID: uuid.New(), Status: "in_progress"}}
	svc := newTestService(newFakeStore(), projects)

	_, err := svc.Create(context.Background(), clientID, uuid.New(), transport.CreateReviewRequest{Rating: 4, Comment: "Nice"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want Validation for an unfinished project", apperr.GetKind(err))
	}
}

func TestCreateDuplicateReviewConflicts(t *testing.T) {
	clientID := uuid.New()
	store := newFakeStore()
	svc := newTestService(store, completedProject(clientID, uuid.New()))
	projectID := uuid.New()

	req := transport.CreateReviewRequest{Rating: 5, Comment: "Great work"}
	if _, err := svc.Create(context.Background(), clientID, projectID, req); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(context.Background(), clientID, projectID, req)
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want Conflict for a second review on the same project", apperr.GetKind(err))
	}
	// The duplicate is caught before the insert; the constraint only
	// arbitrates races.
	if store.createAttempts != 1 {
		t.Fatalf("createAttempts = %d, want 1 (duplicate rejected before insert)", store.createAttempts)
	}
}

func TestCreateDuplicateAfterHideStillConflicts(t *testing.T) {
	clientID := uuid.New()
	store := newFakeStore()
	svc := newTestService(store, completedProject(clientID, uuid.New()))
	projectID := uuid.New()

	review, err := svc.Create(context.Background(), clientID, projectID, transport.CreateReviewRequest{Rating: 2, Comment: "Not great"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Hide(context.Background(), clientID, review.ID); err != nil {
		t.Fatalf("Hide() error = %v", err)
	}

	_, err = svc.Create(context.Background(), clientID, projectID, transport.CreateReviewRequest{Rating: 5, Comment: "Changed my mind"})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want Conflict even after the review was hidden", apperr.GetKind(err))
	}
}

func TestUpdateOwnReviewOnly(t *testing.T) {
	clientID := uuid.New()
	store := newFakeStore()
	svc := newTestService(store, completedProject(clientID, uuid.New()))

	review, err := svc.Create(context.Background(), clientID, uuid.New(), transport.CreateReviewRequest{Rating: 3, Comment: "Okay work"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = svc.Update(context.Background(), uuid.New(), review.ID, transport.UpdateReviewRequest{Rating: 1, Comment: "hijacked"})
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("kind = %v, want Forbidden for a stranger's update", apperr.GetKind(err))
	}

	updated, err := svc.Update(context.Background(), clientID, review.ID, transport.UpdateReviewRequest{Rating: 5, Comment: "Changed my mind, excellent"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Rating != 5 {
		t.Fatalf("Rating = %d, want 5", updated.Rating)
	}
}

func TestHideIsOneWaySoftDelete(t *testing.T) {
	clientID := uuid.New()
	store := newFakeStore()
	svc := newTestService(store, completedProject(clientID, uuid.New()))
	projectID := uuid.New()

	review, err := svc.Create(context.Background(), clientID, projectID, transport.CreateReviewRequest{Rating: 2, Comment: "Not great"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Hide(context.Background(), clientID, review.ID); err != nil {
		t.Fatalf("Hide() error = %v", err)
	}

	// The hidden review no longer surfaces for the project.
	if _, err := svc.GetByProject(context.Background(), projectID); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want NotFound for a hidden review", apperr.GetKind(err))
	}

	// Nor in the designer listing or its aggregate.
	resp, err := svc.ListByDesigner(context.Background(), review.DesignerID, 1, 20)
	if err != nil {
		t.Fatalf("ListByDesigner() error = %v", err)
	}
	if resp.TotalReviews != 0 {
		t.Fatalf("TotalReviews = %d, want 0 after hide", resp.TotalReviews)
	}
}

func TestListByDesignerAggregate(t *testing.T) {
	designerID := uuid.New()
	store := newFakeStore()

	for _, rating := range []int{5, 4, 3} {
		clientID := uuid.New()
		svc := newTestService(store, completedProject(clientID, designerID))
		if _, err := svc.Create(context.Background(), clientID, uuid.New(), transport.CreateReviewRequest{Rating: rating, Comment: "Some comment"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	svc := newTestService(store, completedProject(uuid.New(), designerID))
	resp, err := svc.ListByDesigner(context.Background(), designerID, 1, 20)
	if err != nil {
		t.Fatalf("ListByDesigner() error = %v", err)
	}
	if resp.TotalReviews != 3 {
		t.Fatalf("TotalReviews = %d, want 3", resp.TotalReviews)
	}
	if resp.AverageRating != 4 {
		t.Fatalf("AverageRating = %v, want 4", resp.AverageRating)
	}
}
