package reports

import "ascend/internal/domain/evaluation"

// DepartmentCounts is the raw per-department tally the store produces.
type DepartmentCounts struct {
	ID            string
	Name          string
	Employees     int
	MedicalLeaves int
	Trainings     int
	TrainingHours float64
}

// ScoredEvaluation carries the answers needed to recompute an evaluation's
// weighted score during aggregation.
type ScoredEvaluation struct {
	EvaluationID   string
	EmployeeID     string
	EmployeeName   string
	DepartmentID   string
	DepartmentName string
	Answers        []evaluation.Answer
}

// Build assembles the dashboard from raw counts and evaluations. Averages
// cover only evaluations with at least one validated answer pair; a
// department with no employees or no scorable evaluations reports zeros and
// a nil average rather than dividing by zero.
func Build(counts []DepartmentCounts, evals []ScoredEvaluation, weights evaluation.Weights) Dashboard {
	type scoreAccum struct {
		sum   float64
		count int
		evals int
	}
	byDepartment := make(map[string]*scoreAccum, len(counts))
	for _, dept := range counts {
		byDepartment[dept.ID] = &scoreAccum{}
	}

	var ranked []evaluation.RankedEvaluation
	totalScores := scoreAccum{}
	for _, eval := range evals {
		accum := byDepartment[eval.DepartmentID]
		if accum != nil {
			accum.evals++
		}
		totalScores.evals++

		score, ok := evaluation.WeightedScore(eval.Answers, weights)
		if !ok {
			continue
		}
		if accum != nil {
			accum.sum += score
			accum.count++
		}
		totalScores.sum += score
		totalScores.count++
		ranked = append(ranked, evaluation.RankedEvaluation{
			EvaluationID: eval.EvaluationID,
			EmployeeID:   eval.EmployeeID,
			EmployeeName: eval.EmployeeName,
			Department:   eval.DepartmentName,
			Score:        score,
		})
	}

	dashboard := Dashboard{
		Departments:   make([]DepartmentRollup, 0, len(counts)),
		TopPerformers: evaluation.TopPerformers(ranked, evaluation.TopPerformerLimit),
	}
	for _, dept := range counts {
		accum := byDepartment[dept.ID]
		rollup := DepartmentRollup{
			ID:            dept.ID,
			Name:          dept.Name,
			Employees:     dept.Employees,
			Evaluations:   accum.evals,
			MedicalLeaves: dept.MedicalLeaves,
			Trainings:     dept.Trainings,
			TrainingHours: dept.TrainingHours,
			AverageScore:  average(accum.sum, accum.count),
		}
		dashboard.Departments = append(dashboard.Departments, rollup)

		dashboard.Totals.Employees += dept.Employees
		dashboard.Totals.MedicalLeaves += dept.MedicalLeaves
		dashboard.Totals.Trainings += dept.Trainings
		dashboard.Totals.TrainingHours += dept.TrainingHours
	}
	dashboard.Totals.Evaluations = totalScores.evals
	dashboard.Totals.AverageScore = average(totalScores.sum, totalScores.count)
	return dashboard
}

func average(sum float64, count int) *float64 {
	if count == 0 {
		return nil
	}
	avg := evaluation.Round1(sum / float64(count))
	return &avg
}
