package evaluation

import "errors"

var (
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrTemplateNotFound   = errors.New("evaluation template not found")
	// ErrAnswerNotOwned rejects an answers payload carrying an answer id that
	// belongs to a different evaluation.
	ErrAnswerNotOwned = errors.New("answer does not belong to evaluation")
)
