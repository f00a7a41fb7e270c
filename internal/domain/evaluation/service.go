package evaluation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ascend/internal/platform/db"
)

type Service struct {
	Store   *Store
	Weights Weights
}

func NewService(store *Store, weights Weights) *Service {
	if weights.Self == 0 && weights.Manager == 0 {
		weights = DefaultWeights()
	}
	return &Service{Store: store, Weights: weights}
}

func (s *Service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.Store.ListTemplates(ctx)
}

func (s *Service) GetTemplate(ctx context.Context, id string) (Template, error) {
	return s.Store.GetTemplate(ctx, id)
}

func (s *Service) CreateTemplate(ctx context.Context, name string, questions []Question) (Template, error) {
	var id string
	err := db.WithTx(ctx, s.Store.DB, func(ctx context.Context, tx pgx.Tx) error {
		created, err := s.Store.CreateTemplate(ctx, tx, name, questions)
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return Template{}, err
	}
	return s.Store.GetTemplate(ctx, id)
}

func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.Store.DeleteTemplate(ctx, id)
}

func (s *Service) List(ctx context.Context, employeeID string) ([]Evaluation, error) {
	return s.Store.ListEvaluations(ctx, employeeID)
}

func (s *Service) Get(ctx context.Context, id string) (Evaluation, error) {
	return s.Store.GetEvaluation(ctx, id)
}

// Create materializes the evaluation with one blank answer per template
// question; both tracks start Pendente.
func (s *Service) Create(ctx context.Context, input NewEvaluation) (Evaluation, error) {
	template, err := s.Store.GetTemplate(ctx, input.TemplateID)
	if err != nil {
		return Evaluation{}, err
	}

	id := uuid.NewString()
	err = db.WithTx(ctx, s.Store.DB, func(ctx context.Context, tx pgx.Tx) error {
		return s.Store.InsertEvaluation(ctx, tx, id, input, template.Questions)
	})
	if err != nil {
		return Evaluation{}, err
	}
	return s.Store.GetEvaluation(ctx, id)
}

type UpdateInput struct {
	Date                *time.Time
	SelfStrengths       string
	SelfImprovements    string
	SelfGoals           string
	ManagerStrengths    string
	ManagerImprovements string
	ManagerGoals        string
	Answers             []AnswerUpdate
}

// Update applies the answers payload and recomputes both track statuses and
// the final score from the stored answers. Every answer id must belong to
// the evaluation or the whole update is rejected with ErrAnswerNotOwned.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Evaluation, error) {
	current, err := s.Store.GetEvaluation(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}

	owned, err := s.Store.AnswerIDs(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}
	if err := ensureOwnedAnswers(owned, input.Answers); err != nil {
		return Evaluation{}, err
	}

	err = db.WithTx(ctx, s.Store.DB, func(ctx context.Context, tx pgx.Tx) error {
		for _, update := range input.Answers {
			if err := s.Store.UpdateAnswer(ctx, tx, id, update); err != nil {
				return err
			}
		}

		merged := mergeAnswers(current.Answers, input.Answers)
		current.SelfStatus = TrackStatus(merged, false)
		current.ManagerStatus = TrackStatus(merged, true)
		current.FinalScore = nil
		if score, ok := WeightedScore(merged, s.Weights); ok {
			current.FinalScore = &score
		}

		if input.Date != nil {
			current.Date = *input.Date
		}
		if input.SelfStrengths != "" {
			current.SelfStrengths = input.SelfStrengths
		}
		if input.SelfImprovements != "" {
			current.SelfImprovements = input.SelfImprovements
		}
		if input.SelfGoals != "" {
			current.SelfGoals = input.SelfGoals
		}
		if input.ManagerStrengths != "" {
			current.ManagerStrengths = input.ManagerStrengths
		}
		if input.ManagerImprovements != "" {
			current.ManagerImprovements = input.ManagerImprovements
		}
		if input.ManagerGoals != "" {
			current.ManagerGoals = input.ManagerGoals
		}

		return s.Store.UpdateEvaluation(ctx, tx, current)
	})
	if err != nil {
		return Evaluation{}, err
	}
	return s.Store.GetEvaluation(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteEvaluation(ctx, id)
}

// ensureOwnedAnswers rejects the whole payload when any answer id belongs to
// a different evaluation; no partial write may land.
func ensureOwnedAnswers(owned map[string]bool, updates []AnswerUpdate) error {
	for _, update := range updates {
		if !owned[update.ID] {
			return ErrAnswerNotOwned
		}
	}
	return nil
}

// mergeAnswers overlays the payload updates onto the stored answers so the
// recompute sees the post-write state without a second read.
func mergeAnswers(stored []Answer, updates []AnswerUpdate) []Answer {
	byID := make(map[string]AnswerUpdate, len(updates))
	for _, update := range updates {
		byID[update.ID] = update
	}

	merged := make([]Answer, len(stored))
	copy(merged, stored)
	for i, answer := range merged {
		if update, ok := byID[answer.ID]; ok {
			merged[i].SelfScore = update.SelfScore
			merged[i].ManagerScore = update.ManagerScore
			merged[i].Comment = update.Comment
		}
	}
	return merged
}
