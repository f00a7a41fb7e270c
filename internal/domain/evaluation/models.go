package evaluation

import "time"

type Template struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Question struct {
	ID         string `json:"id"`
	TemplateID string `json:"templateId,omitempty"`
	Category   string `json:"category"`
	Text       string `json:"text"`
	Position   int    `json:"position"`
}

type Evaluation struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	EvaluatorID string    `json:"evaluatorId"`
	TemplateID  string    `json:"templateId"`
	Date        time.Time `json:"date"`

	SelfStatus       string `json:"selfEvaluationStatus"`
	SelfStrengths    string `json:"selfStrengths"`
	SelfImprovements string `json:"selfImprovements"`
	SelfGoals        string `json:"selfGoals"`

	ManagerStatus       string `json:"managerEvaluationStatus"`
	ManagerStrengths    string `json:"managerStrengths"`
	ManagerImprovements string `json:"managerImprovements"`
	ManagerGoals        string `json:"managerGoals"`

	FinalScore *float64  `json:"finalScore,omitempty"`
	Answers    []Answer  `json:"answers,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Answer struct {
	ID           string `json:"id"`
	EvaluationID string `json:"evaluationId,omitempty"`
	QuestionID   string `json:"questionId"`
	SelfScore    *int   `json:"selfScore"`
	ManagerScore *int   `json:"managerScore"`
	Comment      string `json:"comment"`
}

// AnswerUpdate is the PUT payload shape for a single answer.
type AnswerUpdate struct {
	ID           string `json:"id"`
	SelfScore    *int   `json:"selfScore"`
	ManagerScore *int   `json:"managerScore"`
	Comment      string `json:"comment"`
}

type NewEvaluation struct {
	EmployeeID  string
	EvaluatorID string
	TemplateID  string
	Date        time.Time
}
