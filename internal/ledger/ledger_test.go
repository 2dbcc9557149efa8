package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ecolearn-service/internal/models"
)

// memStore is an in-memory UserStore with the same versioning contract as
// the Mongo repository: SaveProgress only succeeds when the caller holds the
// version it read.
type memStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemStore(users ...models.User) *memStore {
	s := &memStore{users: make(map[string]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (s *memStore) SaveProgress(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.users[u.ID]
	if !ok {
		return ErrUserNotFound
	}
	if current.Version != u.Version {
		return ErrConflict
	}
	saved := *u
	saved.Version++
	s.users[u.ID] = saved
	return nil
}

func (s *memStore) get(t *testing.T, id string) models.User {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		t.Fatalf("user %s missing from store", id)
	}
	return u
}

// conflictStore wraps memStore and fails the first n saves with ErrConflict.
type conflictStore struct {
	*memStore
	mu        sync.Mutex
	conflicts int
}

func (s *conflictStore) SaveProgress(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	if s.conflicts > 0 {
		s.conflicts--
		s.mu.Unlock()
		return ErrConflict
	}
	s.mu.Unlock()
	return s.memStore.SaveProgress(ctx, u)
}

func testUser() models.User {
	return models.User{ID: "u1", Email: "kid@example.com", Level: 1}
}

func fourQuestionQuiz() *models.Quiz {
	return &models.Quiz{
		ID:     "q1",
		Title:  "Recycling Basics",
		Points: 100,
		Questions: []models.Question{
			{Question: "Q1", Options: []string{"a", "b"}, CorrectAnswer: 0, Explanation: "E1"},
			{Question: "Q2", Options: []string{"a", "b"}, CorrectAnswer: 1, Explanation: "E2"},
			{Question: "Q3", Options: []string{"a", "b"}, CorrectAnswer: 1, Explanation: "E3"},
			{Question: "Q4", Options: []string{"a", "b"}, CorrectAnswer: 0, Explanation: "E4"},
		},
	}
}

func TestGradeQuiz(t *testing.T) {
	quiz := fourQuestionQuiz()

	testCases := []struct {
		name           string
		answers        []int
		expectedPct    int
		expectedPoints int
	}{
		{"half correct", []int{0, 0, 1, 1}, 50, 50},
		{"all correct", []int{0, 1, 1, 0}, 100, 100},
		{"all wrong", []int{1, 0, 0, 1}, 0, 0},
		{"one of four", []int{0, 0, 0, 1}, 25, 25},
		{"short answer sheet", []int{0, 1}, 50, 50},
		{"all unanswered", []int{Unanswered, Unanswered, Unanswered, Unanswered}, 0, 0},
		{"extra entries ignored", []int{0, 1, 1, 0, 1, 1}, 100, 100},
		{"out-of-range index is wrong", []int{9, 1, 1, 0}, 75, 75},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			results, pct, points := GradeQuiz(quiz, tc.answers)
			if pct != tc.expectedPct {
				t.Errorf("Expected percentage %d, got %d", tc.expectedPct, pct)
			}
			if points != tc.expectedPoints {
				t.Errorf("Expected points %d, got %d", tc.expectedPoints, points)
			}
			if len(results) != len(quiz.Questions) {
				t.Errorf("Expected %d per-question results, got %d", len(quiz.Questions), len(results))
			}
		})
	}
}

func TestGradeQuizRounding(t *testing.T) {
	quiz := &models.Quiz{
		ID:     "q3",
		Points: 100,
		Questions: []models.Question{
			{Question: "Q1", CorrectAnswer: 0},
			{Question: "Q2", CorrectAnswer: 0},
			{Question: "Q3", CorrectAnswer: 0},
		},
	}

	// 1/3 -> 33%, 2/3 -> 67%
	_, pct, points := GradeQuiz(quiz, []int{0, 1, 1})
	if pct != 33 || points != 33 {
		t.Errorf("Expected 33%%/33 points for one of three, got %d%%/%d", pct, points)
	}
	_, pct, points = GradeQuiz(quiz, []int{0, 0, 1})
	if pct != 67 || points != 67 {
		t.Errorf("Expected 67%%/67 points for two of three, got %d%%/%d", pct, points)
	}
}

func TestGradeQuizNoQuestions(t *testing.T) {
	quiz := &models.Quiz{ID: "empty", Points: 100}
	results, pct, points := GradeQuiz(quiz, nil)
	if pct != 0 || points != 0 {
		t.Errorf("Empty quiz must grade to zero, got %d%%/%d", pct, points)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestSubmitQuiz(t *testing.T) {
	store := newMemStore(testUser())
	l := New(store)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	out, err := l.SubmitQuiz(context.Background(), "u1", fourQuestionQuiz(), []int{0, 0, 1, 1}, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Percentage != 50 || out.PointsEarned != 50 {
		t.Errorf("Expected 50%%/50 points, got %d%%/%d", out.Percentage, out.PointsEarned)
	}
	if out.TotalPoints != 50 || out.NewLevel != 1 || out.LeveledUp {
		t.Errorf("Unexpected totals: %+v", out)
	}
	if out.Streak != 1 {
		t.Errorf("First activity should start a streak of 1, got %d", out.Streak)
	}

	saved := store.get(t, "u1")
	if len(saved.CompletedQuizzes) != 1 {
		t.Fatalf("Expected one completion record, got %d", len(saved.CompletedQuizzes))
	}
	rec := saved.CompletedQuizzes[0]
	if rec.QuizID != "q1" || rec.Score != 50 || !rec.CompletedAt.Equal(now) {
		t.Errorf("Unexpected completion record: %+v", rec)
	}
}

func TestSubmitQuizRetakeAppends(t *testing.T) {
	store := newMemStore(testUser())
	l := New(store)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	quiz := fourQuestionQuiz()

	if _, err := l.SubmitQuiz(context.Background(), "u1", quiz, []int{0, 1, 1, 0}, now); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out, err := l.SubmitQuiz(context.Background(), "u1", quiz, []int{0, 1, 1, 0}, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Retakes must be allowed, got %v", err)
	}
	if out.TotalPoints != 200 {
		t.Errorf("Retake should award fresh points, expected total 200, got %d", out.TotalPoints)
	}
	if saved := store.get(t, "u1"); len(saved.CompletedQuizzes) != 2 {
		t.Errorf("Expected two completion records, got %d", len(saved.CompletedQuizzes))
	}
}

func TestSubmitChallenge(t *testing.T) {
	store := newMemStore(testUser())
	l := New(store)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	challenge := &models.Challenge{ID: "c1", Title: "Bike to school", Points: 150}

	out, err := l.SubmitChallenge(context.Background(), "u1", challenge, "", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.PointsEarned != 150 || out.TotalPoints != 150 {
		t.Errorf("Expected 150 points earned, got %+v", out)
	}
	if out.Streak != 0 {
		t.Errorf("Non-daily challenge must not touch the streak, got %d", out.Streak)
	}

	saved := store.get(t, "u1")
	if len(saved.CompletedChallenges) != 1 || saved.CompletedChallenges[0].ChallengeID != "c1" {
		t.Errorf("Unexpected challenge records: %+v", saved.CompletedChallenges)
	}
}

func TestSubmitChallengeDuplicateRejected(t *testing.T) {
	store := newMemStore(testUser())
	l := New(store)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	challenge := &models.Challenge{ID: "c1", Points: 150}

	if _, err := l.SubmitChallenge(context.Background(), "u1", challenge, "", now); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	before := store.get(t, "u1")

	_, err := l.SubmitChallenge(context.Background(), "u1", challenge, "", now.Add(time.Hour))
	if !errors.Is(err, ErrDuplicateCompletion) {
		t.Fatalf("Expected ErrDuplicateCompletion, got %v", err)
	}

	after := store.get(t, "u1")
	if after.EcoPoints != before.EcoPoints || len(after.CompletedChallenges) != len(before.CompletedChallenges) {
		t.Errorf("Rejected duplicate must not mutate state: before=%+v after=%+v", before, after)
	}
}

func TestSubmitChallengeProofRequired(t *testing.T) {
	store := newMemStore(testUser())
	l := New(store)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	challenge := &models.Challenge{ID: "c2", Points: 80, RequiresProof: true}

	for _, proof := range []string{"", "   ", "\t\n"} {
		if _, err := l.SubmitChallenge(context.Background(), "u1", challenge, proof, now); !errors.Is(err, ErrMissingProof) {
			t.Errorf("Expected ErrMissingProof for proof %q, got %v", proof, err)
		}
	}
	if saved := store.get(t, "u1"); saved.EcoPoints != 0 || len(saved.CompletedChallenges) != 0 {
		t.Errorf("Rejected submissions must not mutate state: %+v", saved)
	}

	out, err := l.SubmitChallenge(context.Background(), "u1", challenge, "photo of my compost bin", now)
	if err != nil {
		t.Fatalf("Unexpected error with proof supplied: %v", err)
	}
	if out.PointsEarned != 80 {
		t.Errorf("Expected 80 points, got %d", out.PointsEarned)
	}
}

func TestSubmitDailyChallengeFeedsStreak(t *testing.T) {
	yesterday := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	user := testUser()
	user.Streak = 4
	user.LastActivityDate = &yesterday
	store := newMemStore(user)
	l := New(store)

	challenge := &models.Challenge{ID: "daily1", Points: 50, IsDaily: true}
	out, err := l.SubmitChallenge(context.Background(), "u1", challenge, "", yesterday.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Streak != 5 {
		t.Errorf("Daily challenge on consecutive day should extend streak to 5, got %d", out.Streak)
	}
}

func TestSubmitARActivity(t *testing.T) {
	store := newMemStore(testUser())
	l := New(store)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	out, err := l.SubmitARActivity(context.Background(), "u1", ARTreePlanting, 3, 120, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.TotalPoints != 120 || out.TotalActions != 3 {
		t.Errorf("Unexpected AR outcome: %+v", out)
	}
	if out.Streak != 1 {
		t.Errorf("AR activity should feed the streak, got %d", out.Streak)
	}

	saved := store.get(t, "u1")
	if saved.ARTreesPlanted != 3 || saved.ARPoints != 120 {
		t.Errorf("Expected AR counters updated, got trees=%d ar_points=%d", saved.ARTreesPlanted, saved.ARPoints)
	}

	if _, err := l.SubmitARActivity(context.Background(), "u1", ARActivity("flying"), 1, 10, now); !errors.Is(err, ErrInvalidActivity) {
		t.Errorf("Expected ErrInvalidActivity for unknown kind, got %v", err)
	}
	if _, err := l.SubmitARActivity(context.Background(), "u1", ARRecycling, -1, 10, now); !errors.Is(err, ErrInvalidActivity) {
		t.Errorf("Expected ErrInvalidActivity for negative count, got %v", err)
	}
}

func TestCommitRetriesConflictOnce(t *testing.T) {
	store := &conflictStore{memStore: newMemStore(testUser()), conflicts: 1}
	l := New(store)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	out, err := l.SubmitARActivity(context.Background(), "u1", ARRecycling, 1, 25, now)
	if err != nil {
		t.Fatalf("A single conflict should be retried away, got %v", err)
	}
	if out.TotalPoints != 25 {
		t.Errorf("Expected 25 points after retry, got %d", out.TotalPoints)
	}
}

func TestCommitSurfacesRepeatedConflict(t *testing.T) {
	store := &conflictStore{memStore: newMemStore(testUser()), conflicts: 2}
	l := New(store)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	_, err := l.SubmitARActivity(context.Background(), "u1", ARRecycling, 1, 25, now)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict after second conflict, got %v", err)
	}
	if saved := store.get(t, "u1"); saved.EcoPoints != 0 {
		t.Errorf("Failed submission must not change points, got %d", saved.EcoPoints)
	}
}

func TestConcurrentSubmissionsSerialize(t *testing.T) {
	store := newMemStore(testUser())
	l := New(store)
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, points := range []int{50, 30} {
		wg.Add(1)
		go func(points int) {
			defer wg.Done()
			_, err := l.SubmitARActivity(context.Background(), "u1", AREnergy, 1, points, now)
			errs <- err
		}(points)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	saved := store.get(t, "u1")
	if saved.EcoPoints != 80 {
		t.Errorf("Lost update: expected 80 points, got %d", saved.EcoPoints)
	}
	if saved.AREnergyActions != 2 {
		t.Errorf("Expected 2 energy actions, got %d", saved.AREnergyActions)
	}
}
