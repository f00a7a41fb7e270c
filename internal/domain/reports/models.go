package reports

import "ascend/internal/domain/evaluation"

// Filter narrows the dashboard window. Days counts back from now; a zero or
// negative value means no time cutoff. Department is a name, empty or "all"
// for every department.
type Filter struct {
	Days       int
	Department string
}

// All reports whether the filter spans every department.
func (f Filter) All() bool {
	return f.Department == "" || f.Department == "all"
}

type Totals struct {
	Employees     int      `json:"employees"`
	Evaluations   int      `json:"evaluations"`
	AverageScore  *float64 `json:"averageScore"`
	MedicalLeaves int      `json:"medicalLeaves"`
	Trainings     int      `json:"trainings"`
	TrainingHours float64  `json:"trainingHours"`
}

type DepartmentRollup struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Employees     int      `json:"employees"`
	Evaluations   int      `json:"evaluations"`
	MedicalLeaves int      `json:"medicalLeaves"`
	Trainings     int      `json:"trainings"`
	TrainingHours float64  `json:"trainingHours"`
	AverageScore  *float64 `json:"averageScore"`
}

type Dashboard struct {
	Totals        Totals                        `json:"totals"`
	Departments   []DepartmentRollup            `json:"departments"`
	TopPerformers []evaluation.RankedEvaluation `json:"topPerformers"`
}
