package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-api/internal/domain"
)

// Mock repositories for testing
type mockQuestionRepository struct {
	listFunc           func(ctx context.Context) ([]domain.Question, error)
	getByIDFunc        func(ctx context.Context, id int) (*domain.Question, error)
	createFunc         func(ctx context.Context, question *domain.NewQuestion) (int, error)
	deleteFunc         func(ctx context.Context, id int) error
	searchFunc         func(ctx context.Context, term string) ([]domain.Question, error)
	listByCategoryFunc func(ctx context.Context, categoryID int) ([]domain.Question, error)
	listExcludingFunc  func(ctx context.Context, categoryID int, excluded []int) ([]domain.Question, error)
}

func (m *mockQuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) Create(ctx context.Context, question *domain.NewQuestion) (int, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, question)
	}
	return 0, errors.New("not implemented")
}

func (m *mockQuestionRepository) Delete(ctx context.Context, id int) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockQuestionRepository) Search(ctx context.Context, term string) ([]domain.Question, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, term)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	if m.listByCategoryFunc != nil {
		return m.listByCategoryFunc(ctx, categoryID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) ListExcluding(ctx context.Context, categoryID int, excluded []int) ([]domain.Question, error) {
	if m.listExcludingFunc != nil {
		return m.listExcludingFunc(ctx, categoryID, excluded)
	}
	return nil, errors.New("not implemented")
}

type mockCategoryRepository struct {
	listFunc    func(ctx context.Context) ([]domain.Category, error)
	getByIDFunc func(ctx context.Context, id int) (*domain.Category, error)
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func makeQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, domain.Question{
			ID:         i,
			Question:   fmt.Sprintf("question %d", i),
			Answer:     fmt.Sprintf("answer %d", i),
			Difficulty: 1 + i%5,
			Category:   1 + i%3,
		})
	}
	return questions
}

var testCategories = []domain.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
}

func newTestService(q *mockQuestionRepository, c *mockCategoryRepository) *TriviaService {
	return NewTriviaService(q, c, nil, logrus.New())
}

func TestCategories(t *testing.T) {
	svc := newTestService(&mockQuestionRepository{}, &mockCategoryRepository{
		listFunc: func(ctx context.Context) ([]domain.Category, error) {
			return testCategories, nil
		},
	})

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCategories, categories)
}

func TestCategoriesStoreError(t *testing.T) {
	svc := newTestService(&mockQuestionRepository{}, &mockCategoryRepository{
		listFunc: func(ctx context.Context) ([]domain.Category, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, err := svc.Categories(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnprocessable)
}

func TestListQuestionsFirstPage(t *testing.T) {
	all := makeQuestions(25)
	svc := newTestService(
		&mockQuestionRepository{
			listFunc: func(ctx context.Context) ([]domain.Question, error) { return all, nil },
		},
		&mockCategoryRepository{
			listFunc: func(ctx context.Context) ([]domain.Category, error) { return testCategories, nil },
		},
	)

	page, err := svc.ListQuestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, page.Questions, QuestionsPerPage)
	assert.Equal(t, all[:10], page.Questions)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, testCategories, page.Categories)
}

func TestListQuestionsLastPageIsShort(t *testing.T) {
	all := makeQuestions(25)
	svc := newTestService(
		&mockQuestionRepository{
			listFunc: func(ctx context.Context) ([]domain.Question, error) { return all, nil },
		},
		&mockCategoryRepository{
			listFunc: func(ctx context.Context) ([]domain.Category, error) { return testCategories, nil },
		},
	)

	page, err := svc.ListQuestions(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, page.Questions, 5)
	assert.Equal(t, all[20:], page.Questions)
	assert.Equal(t, 25, page.Total)
}

func TestListQuestionsPagePastEnd(t *testing.T) {
	svc := newTestService(
		&mockQuestionRepository{
			listFunc: func(ctx context.Context) ([]domain.Question, error) {
				return makeQuestions(25), nil
			},
		},
		&mockCategoryRepository{},
	)

	_, err := svc.ListQuestions(context.Background(), 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListQuestionsEmptyStore(t *testing.T) {
	svc := newTestService(
		&mockQuestionRepository{
			listFunc: func(ctx context.Context) ([]domain.Question, error) {
				return []domain.Question{}, nil
			},
		},
		&mockCategoryRepository{},
	)

	_, err := svc.ListQuestions(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteQuestion(t *testing.T) {
	all := makeQuestions(15)
	deleted := 0
	svc := newTestService(
		&mockQuestionRepository{
			getByIDFunc: func(ctx context.Context, id int) (*domain.Question, error) {
				return &all[2], nil
			},
			deleteFunc: func(ctx context.Context, id int) error {
				deleted = id
				return nil
			},
			listFunc: func(ctx context.Context) ([]domain.Question, error) {
				remaining := append([]domain.Question{}, all[:2]...)
				return append(remaining, all[3:]...), nil
			},
		},
		&mockCategoryRepository{},
	)

	result, err := svc.DeleteQuestion(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.Equal(t, 3, result.Deleted)
	assert.Equal(t, 14, result.Total)
	assert.Len(t, result.Questions, QuestionsPerPage)
	for _, q := range result.Questions {
		assert.NotEqual(t, 3, q.ID)
	}
}

func TestDeleteQuestionMissing(t *testing.T) {
	svc := newTestService(
		&mockQuestionRepository{
			getByIDFunc: func(ctx context.Context, id int) (*domain.Question, error) {
				return nil, domain.ErrQuestionNotFound
			},
		},
		&mockCategoryRepository{},
	)

	_, err := svc.DeleteQuestion(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteQuestionStoreFailure(t *testing.T) {
	svc := newTestService(
		&mockQuestionRepository{
			getByIDFunc: func(ctx context.Context, id int) (*domain.Question, error) {
				return &domain.Question{ID: id}, nil
			},
			deleteFunc: func(ctx context.Context, id int) error {
				return errors.New("deadlock detected")
			},
		},
		&mockCategoryRepository{},
	)

	_, err := svc.DeleteQuestion(context.Background(), 3, 1)
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestCreateQuestion(t *testing.T) {
	question := "What boxer's original name is Cassius Clay?"
	answer := "Muhammad Ali"
	difficulty := 1
	category := 4

	var got *domain.NewQuestion
	svc := newTestService(
		&mockQuestionRepository{
			createFunc: func(ctx context.Context, q *domain.NewQuestion) (int, error) {
				got = q
				return 26, nil
			},
			listFunc: func(ctx context.Context) ([]domain.Question, error) {
				return makeQuestions(26), nil
			},
		},
		&mockCategoryRepository{},
	)

	result, err := svc.CreateQuestion(context.Background(), &domain.NewQuestion{
		Question:   &question,
		Answer:     &answer,
		Difficulty: &difficulty,
		Category:   &category,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, 26, result.Created)
	assert.Equal(t, 26, result.Total)
	assert.Len(t, result.Questions, QuestionsPerPage)
	require.NotNil(t, got)
	assert.Equal(t, question, *got.Question)
}

func TestCreateQuestionInsertFailure(t *testing.T) {
	// Absent fields reach the store as NULLs and are rejected there.
	svc := newTestService(
		&mockQuestionRepository{
			createFunc: func(ctx context.Context, q *domain.NewQuestion) (int, error) {
				return 0, errors.New(`null value in column "answer" violates not-null constraint`)
			},
		},
		&mockCategoryRepository{},
	)

	question := "an answerless question"
	_, err := svc.CreateQuestion(context.Background(), &domain.NewQuestion{Question: &question}, 1)
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestSearchQuestions(t *testing.T) {
	matches := makeQuestions(12)
	var gotTerm string
	svc := newTestService(
		&mockQuestionRepository{
			searchFunc: func(ctx context.Context, term string) ([]domain.Question, error) {
				gotTerm = term
				return matches, nil
			},
		},
		&mockCategoryRepository{},
	)

	result, err := svc.SearchQuestions(context.Background(), "title", 1)
	require.NoError(t, err)
	assert.Equal(t, "title", gotTerm)
	assert.Len(t, result.Questions, QuestionsPerPage)
	assert.Equal(t, 12, result.Total)
}

func TestSearchQuestionsNoMatches(t *testing.T) {
	svc := newTestService(
		&mockQuestionRepository{
			searchFunc: func(ctx context.Context, term string) ([]domain.Question, error) {
				return []domain.Question{}, nil
			},
		},
		&mockCategoryRepository{},
	)

	result, err := svc.SearchQuestions(context.Background(), "xyzzy", 1)
	require.NoError(t, err)
	assert.Empty(t, result.Questions)
	assert.Equal(t, 0, result.Total)
}

func TestSearchQuestionsStoreFailure(t *testing.T) {
	svc := newTestService(
		&mockQuestionRepository{
			searchFunc: func(ctx context.Context, term string) ([]domain.Question, error) {
				return nil, errors.New("connection reset")
			},
		},
		&mockCategoryRepository{},
	)

	_, err := svc.SearchQuestions(context.Background(), "title", 1)
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestQuestionsByCategory(t *testing.T) {
	matches := makeQuestions(14)
	svc := newTestService(
		&mockQuestionRepository{
			listByCategoryFunc: func(ctx context.Context, categoryID int) ([]domain.Question, error) {
				return matches, nil
			},
		},
		&mockCategoryRepository{
			getByIDFunc: func(ctx context.Context, id int) (*domain.Category, error) {
				return &domain.Category{ID: id, Type: "Science"}, nil
			},
		},
	)

	result, err := svc.QuestionsByCategory(context.Background(), 1)
	require.NoError(t, err)
	// No pagination cap on this listing.
	assert.Len(t, result.Questions, 14)
	assert.Equal(t, 14, result.Total)
	assert.Equal(t, &domain.Category{ID: 1, Type: "Science"}, result.Category)
}

func TestQuestionsByCategoryEmpty(t *testing.T) {
	svc := newTestService(
		&mockQuestionRepository{
			listByCategoryFunc: func(ctx context.Context, categoryID int) ([]domain.Question, error) {
				return []domain.Question{}, nil
			},
		},
		&mockCategoryRepository{},
	)

	_, err := svc.QuestionsByCategory(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionsByCategoryDanglingReference(t *testing.T) {
	svc := newTestService(
		&mockQuestionRepository{
			listByCategoryFunc: func(ctx context.Context, categoryID int) ([]domain.Question, error) {
				return makeQuestions(3), nil
			},
		},
		&mockCategoryRepository{
			getByIDFunc: func(ctx context.Context, id int) (*domain.Category, error) {
				return nil, domain.ErrCategoryNotFound
			},
		},
	)

	_, err := svc.QuestionsByCategory(context.Background(), 9)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNextQuizQuestion(t *testing.T) {
	pool := makeQuestions(5)
	var gotCategory int
	var gotExcluded []int
	svc := newTestService(
		&mockQuestionRepository{
			listExcludingFunc: func(ctx context.Context, categoryID int, excluded []int) ([]domain.Question, error) {
				gotCategory = categoryID
				gotExcluded = excluded
				return pool, nil
			},
		},
		&mockCategoryRepository{},
	)

	question, err := svc.NextQuizQuestion(context.Background(), 0, []int{7, 8})
	require.NoError(t, err)
	assert.Equal(t, 0, gotCategory)
	assert.Equal(t, []int{7, 8}, gotExcluded)
	assert.Contains(t, pool, *question)
}

func TestNextQuizQuestionExhausted(t *testing.T) {
	svc := newTestService(
		&mockQuestionRepository{
			listExcludingFunc: func(ctx context.Context, categoryID int, excluded []int) ([]domain.Question, error) {
				return []domain.Question{}, nil
			},
		},
		&mockCategoryRepository{},
	)

	_, err := svc.NextQuizQuestion(context.Background(), 0, []int{1, 2, 3})
	assert.ErrorIs(t, err, ErrNoMoreQuestions)
}

func TestNextQuizQuestionNeverRepeats(t *testing.T) {
	all := makeQuestions(5)
	svc := newTestService(
		&mockQuestionRepository{
			listExcludingFunc: func(ctx context.Context, categoryID int, excluded []int) ([]domain.Question, error) {
				pool := []domain.Question{}
				for _, q := range all {
					seen := false
					for _, id := range excluded {
						if q.ID == id {
							seen = true
							break
						}
					}
					if !seen {
						pool = append(pool, q)
					}
				}
				return pool, nil
			},
		},
		&mockCategoryRepository{},
	)

	previous := []int{}
	for i := 0; i < len(all); i++ {
		question, err := svc.NextQuizQuestion(context.Background(), 0, previous)
		require.NoError(t, err)
		assert.NotContains(t, previous, question.ID)
		previous = append(previous, question.ID)
	}

	// Pool exhausted after every question has been asked once.
	_, err := svc.NextQuizQuestion(context.Background(), 0, previous)
	assert.ErrorIs(t, err, ErrNoMoreQuestions)
}

func TestPaginate(t *testing.T) {
	all := makeQuestions(25)

	tests := []struct {
		name string
		page int
		want []domain.Question
	}{
		{"first page", 1, all[:10]},
		{"middle page", 2, all[10:20]},
		{"short last page", 3, all[20:]},
		{"past the end", 4, []domain.Question{}},
		{"zero falls back to first", 0, all[:10]},
		{"negative falls back to first", -2, all[:10]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(all, tt.page))
		})
	}
}
