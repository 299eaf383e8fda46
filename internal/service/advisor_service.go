package service

import (
	"context"
	"strings"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/repository"
)

// Advisor confidence levels. Learned keyword matches rank well above plain
// category-name matches.
const (
	learnedMerchantConfidence = 0.9
	learnedKeywordConfidence  = 0.7
	nameMatchConfidence       = 0.4
)

// AdvisorService suggests a category for a transaction description by text
// matching, and learns from user corrections. Suggestions are best-effort;
// an empty suggestion with confidence 0 means the advisor has no opinion.
type AdvisorService struct {
	advisorRepo  *repository.AdvisorRepository
	categoryRepo *repository.CategoryRepository
}

// NewAdvisorService creates a new AdvisorService with the provided repository dependencies.
func NewAdvisorService(advisorRepo *repository.AdvisorRepository, categoryRepo *repository.CategoryRepository) *AdvisorService {
	return &AdvisorService{
		advisorRepo:  advisorRepo,
		categoryRepo: categoryRepo,
	}
}

// SuggestCategory returns the advisor's best guess for the given description
// and optional merchant name, with a confidence in [0, 1].
//
// Match order: learned keyword equal to the merchant name, learned keyword
// contained in the text, then a category whose name appears in the text.
func (s *AdvisorService) SuggestCategory(description, merchant string) (model.CategorySuggestion, error) {
	text := strings.ToLower(strings.TrimSpace(description + " " + merchant))
	merchantKey := strings.ToLower(strings.TrimSpace(merchant))

	learned, err := s.advisorRepo.GetAll()
	if err != nil {
		return model.CategorySuggestion{}, err
	}

	if merchantKey != "" {
		for _, k := range learned {
			if strings.ToLower(k.Keyword) == merchantKey {
				return model.CategorySuggestion{CategoryID: k.CategoryID, Confidence: learnedMerchantConfidence}, nil
			}
		}
	}

	for _, k := range learned {
		if strings.Contains(text, strings.ToLower(k.Keyword)) {
			return model.CategorySuggestion{CategoryID: k.CategoryID, Confidence: learnedKeywordConfidence}, nil
		}
	}

	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return model.CategorySuggestion{}, err
	}

	for _, c := range categories {
		if strings.Contains(text, strings.ToLower(c.Name)) {
			return model.CategorySuggestion{CategoryID: c.ID, Confidence: nameMatchConfidence}, nil
		}
	}

	return model.CategorySuggestion{}, nil
}

// LearnFromCorrection records that the given description/merchant belongs
// to categoryID. The merchant name is preferred as the learned keyword; the
// trimmed description is the fallback.
func (s *AdvisorService) LearnFromCorrection(ctx context.Context, description, merchant, categoryID string) error {
	keyword := strings.TrimSpace(merchant)
	if keyword == "" {
		keyword = strings.TrimSpace(description)
	}
	if keyword == "" || categoryID == "" {
		return nil
	}

	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return err
	}

	return s.advisorRepo.Upsert(ctx, keyword, categoryID)
}
