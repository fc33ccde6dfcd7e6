package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"trivia-api/internal/cache"
	"trivia-api/internal/domain"
)

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// TriviaService implements the trivia operations on top of the question
// and category repositories. All pagination is a pure slice of the full
// ordered result set; no state is kept between requests.
type TriviaService struct {
	questionRepo  domain.QuestionRepository
	categoryRepo  domain.CategoryRepository
	categoryCache *cache.CategoryCache
	log           *logrus.Logger
}

// NewTriviaService creates a new trivia service. The category cache is
// optional; pass nil to always read categories from the store.
func NewTriviaService(
	questionRepo domain.QuestionRepository,
	categoryRepo domain.CategoryRepository,
	categoryCache *cache.CategoryCache,
	log *logrus.Logger,
) *TriviaService {
	return &TriviaService{
		questionRepo:  questionRepo,
		categoryRepo:  categoryRepo,
		categoryCache: categoryCache,
		log:           log,
	}
}

// QuestionPage is the result of a paginated question listing.
type QuestionPage struct {
	Questions  []domain.Question
	Total      int
	Categories []domain.Category
}

// DeleteResult is the result of deleting a question.
type DeleteResult struct {
	Deleted   int
	Questions []domain.Question
	Total     int
}

// CreateResult is the result of creating a question.
type CreateResult struct {
	Created   int
	Questions []domain.Question
	Total     int
}

// SearchResult is the result of a question search. Total counts every
// match, not just the returned page.
type SearchResult struct {
	Questions []domain.Question
	Total     int
}

// CategoryQuestions is the result of a category-filtered listing. The
// full match list is returned without a pagination cap.
type CategoryQuestions struct {
	Questions []domain.Question
	Total     int
	Category  *domain.Category
}

// Categories retrieves all categories ordered by ID, going through the
// cache when one is configured. Cache failures fall back to the store.
func (s *TriviaService) Categories(ctx context.Context) ([]domain.Category, error) {
	if s.categoryCache != nil {
		categories, err := s.categoryCache.Get(ctx)
		if err == nil {
			return categories, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.log.WithError(err).Warn("category cache read failed")
		}
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if s.categoryCache != nil {
		if err := s.categoryCache.Set(ctx, categories); err != nil {
			s.log.WithError(err).Warn("category cache write failed")
		}
	}

	return categories, nil
}

// ListQuestions returns one fixed-size page of the full question set
// ordered by ID, the grand total, and all categories. A page past the
// end of the set is ErrNotFound, never an empty list.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	current := paginate(questions, page)
	if len(current) == 0 {
		return nil, ErrNotFound
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:  current,
		Total:      len(questions),
		Categories: categories,
	}, nil
}

// DeleteQuestion deletes a question by ID and returns the requested page
// of the remaining questions. A missing question is ErrNotFound; a store
// failure during the delete is ErrUnprocessable.
func (s *TriviaService) DeleteQuestion(ctx context.Context, id, page int) (*DeleteResult, error) {
	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}

	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}

	return &DeleteResult{
		Deleted:   id,
		Questions: paginate(questions, page),
		Total:     len(questions),
	}, nil
}

// CreateQuestion inserts a new question and returns the requested page
// of the updated question set. Any failure, including NULL rejections
// from absent fields, is ErrUnprocessable.
func (s *TriviaService) CreateQuestion(ctx context.Context, input *domain.NewQuestion, page int) (*CreateResult, error) {
	id, err := s.questionRepo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}

	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}

	return &CreateResult{
		Created:   id,
		Questions: paginate(questions, page),
		Total:     len(questions),
	}, nil
}

// SearchQuestions returns the requested page of the questions whose text
// contains the term, case-insensitively, plus the count of all matches.
// Zero matches is a successful empty result.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string, page int) (*SearchResult, error) {
	matches, err := s.questionRepo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}

	return &SearchResult{
		Questions: paginate(matches, page),
		Total:     len(matches),
	}, nil
}

// QuestionsByCategory returns every question in a category, uncapped,
// along with the full category record. Zero matches is ErrNotFound.
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID int) (*CategoryQuestions, error) {
	questions, err := s.questionRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions by category: %w", err)
	}

	if len(questions) == 0 {
		return nil, ErrNotFound
	}

	// Questions exist but the category row is missing: a dangling
	// reference surfaces as a store failure, not a 404.
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", categoryID, err)
	}

	return &CategoryQuestions{
		Questions: questions,
		Total:     len(questions),
		Category:  category,
	}, nil
}

// NextQuizQuestion picks one question uniformly at random from the pool
// of questions not yet asked, restricted to a category when categoryID
// is non-zero. An exhausted pool is ErrNoMoreQuestions.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, categoryID int, previous []int) (*domain.Question, error) {
	pool, err := s.questionRepo.ListExcluding(ctx, categoryID, previous)
	if err != nil {
		return nil, fmt.Errorf("failed to list unused questions: %w", err)
	}

	if len(pool) == 0 {
		return nil, ErrNoMoreQuestions
	}

	question := pool[rand.Intn(len(pool))]
	return &question, nil
}

// paginate slices one fixed-size page out of the full ordered result
// set. Pages before the first behave as page one; pages past the end
// yield an empty slice.
func paginate(questions []domain.Question, page int) []domain.Question {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * QuestionsPerPage
	if start >= len(questions) {
		return []domain.Question{}
	}

	end := start + QuestionsPerPage
	if end > len(questions) {
		end = len(questions)
	}

	return questions[start:end]
}
