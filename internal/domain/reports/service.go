package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ascend/internal/domain/evaluation"
)

type Service struct {
	store   *Store
	weights evaluation.Weights
}

func NewService(store *Store, weights evaluation.Weights) *Service {
	return &Service{store: store, weights: weights}
}

// Dashboard aggregates the filtered window synchronously; there is no cache.
func (s *Service) Dashboard(ctx context.Context, filter Filter) (Dashboard, error) {
	since := time.Time{}
	if filter.Days > 0 {
		since = time.Now().AddDate(0, 0, -filter.Days)
	}

	counts, err := s.store.DepartmentCounts(ctx, since, filter)
	if err != nil {
		return Dashboard{}, fmt.Errorf("department counts: %w", err)
	}
	evals, err := s.store.EvaluationsForScoring(ctx, since, filter)
	if err != nil {
		return Dashboard{}, fmt.Errorf("evaluations: %w", err)
	}
	return Build(counts, evals, s.weights), nil
}

// ExportPDF renders the dashboard as a downloadable PDF.
func (s *Service) ExportPDF(ctx context.Context, filter Filter) ([]byte, error) {
	dashboard, err := s.Dashboard(ctx, filter)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, translator("Relatório de RH"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, translator(fmt.Sprintf("Gerado em %s", time.Now().Format("02/01/2006 15:04"))))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, translator("Totais"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, translator(fmt.Sprintf("Funcionários ativos: %d", dashboard.Totals.Employees)))
	pdf.Ln(6)
	pdf.Cell(0, 7, translator(fmt.Sprintf("Avaliações: %d (média %s)", dashboard.Totals.Evaluations, formatScore(dashboard.Totals.AverageScore))))
	pdf.Ln(6)
	pdf.Cell(0, 7, translator(fmt.Sprintf("Afastamentos: %d", dashboard.Totals.MedicalLeaves)))
	pdf.Ln(6)
	pdf.Cell(0, 7, translator(fmt.Sprintf("Treinamentos: %d (%.1f horas)", dashboard.Totals.Trainings, dashboard.Totals.TrainingHours)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, translator("Por departamento"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{55, 25, 25, 30, 30, 25}
	headers := []string{"Departamento", "Funcionários", "Avaliações", "Afastamentos", "Treinamentos", "Média"}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, translator(header), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, dept := range dashboard.Departments {
		cells := []string{
			dept.Name,
			fmt.Sprintf("%d", dept.Employees),
			fmt.Sprintf("%d", dept.Evaluations),
			fmt.Sprintf("%d", dept.MedicalLeaves),
			fmt.Sprintf("%d", dept.Trainings),
			formatScore(dept.AverageScore),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, translator(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, translator("Destaques"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	if len(dashboard.TopPerformers) == 0 {
		pdf.Cell(0, 6, translator("Nenhuma avaliação concluída no período."))
		pdf.Ln(6)
	}
	for i, performer := range dashboard.TopPerformers {
		pdf.Cell(0, 6, translator(fmt.Sprintf("%d. %s (%s): %.1f", i+1, performer.EmployeeName, performer.Department, performer.Score)))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *score)
}
