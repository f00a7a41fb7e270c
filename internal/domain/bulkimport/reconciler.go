package bulkimport

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"ascend/internal/domain/core"
	"ascend/internal/domain/medicalleave"
	"ascend/internal/domain/training"
)

// Reconciler turns loosely-typed display rows into relation-resolved entity
// creations. Failures never abort the batch: every row is processed and the
// outcome aggregated per row.
type Reconciler struct {
	Store   StoreAPI
	Workers int
}

func NewReconciler(store StoreAPI, workers int) *Reconciler {
	if workers <= 0 {
		workers = 4
	}
	return &Reconciler{Store: store, Workers: workers}
}

// Run processes rows concurrently; results keep the input order because each
// worker writes to its own slot. Store-level unique constraints resolve races
// between rows in the same batch claiming the same CPF.
func (r *Reconciler) Run(ctx context.Context, kind Kind, rows []Row) Summary {
	type outcome struct {
		name string
		err  error
	}
	outcomes := make([]outcome, len(rows))

	sem := make(chan struct{}, r.Workers)
	var wg sync.WaitGroup
	for i := range rows {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			name, err := r.processRow(ctx, kind, rows[i])
			outcomes[i] = outcome{name: name, err: err}
		}(i)
	}
	wg.Wait()

	summary := Summary{Successful: []RowSuccess{}, Failed: []RowFailure{}}
	for i, out := range outcomes {
		if out.err != nil {
			summary.Failed = append(summary.Failed, RowFailure{Row: i + 1, Reason: out.err.Error()})
			continue
		}
		summary.Successful = append(summary.Successful, RowSuccess{Row: i + 1, Name: out.name})
	}
	summary.Message = fmt.Sprintf("Importação concluída: %d sucesso(s), %d falha(s)", len(summary.Successful), len(summary.Failed))
	return summary
}

func (r *Reconciler) processRow(ctx context.Context, kind Kind, row Row) (string, error) {
	if label, missing := missingField(row, kind); missing {
		return "", fmt.Errorf("Campo obrigatório ausente: %s", label)
	}

	switch kind {
	case KindEmployees:
		return r.processEmployee(ctx, row)
	case KindMedicalLeaves:
		return r.processMedicalLeave(ctx, row)
	case KindTrainings:
		return r.processTraining(ctx, row)
	case KindCareer:
		return r.processCareer(ctx, row)
	}
	return "", fmt.Errorf("tipo de importação desconhecido: %s", kind)
}

func (r *Reconciler) processEmployee(ctx context.Context, row Row) (string, error) {
	cpf := row.Field(LabelCPF)
	email := row.Field(LabelEmail)

	if exists, err := r.Store.EmployeeCPFExists(ctx, cpf); err != nil {
		return "", storeFailure(err)
	} else if exists {
		return "", fmt.Errorf("CPF já cadastrado: %s", cpf)
	}
	if exists, err := r.Store.EmployeeEmailExists(ctx, email); err != nil {
		return "", storeFailure(err)
	} else if exists {
		return "", fmt.Errorf("Email já cadastrado: %s", email)
	}

	departmentID, positionID, levelID, shiftID, err := r.resolveAssignment(ctx, row)
	if err != nil {
		return "", err
	}

	birthDate, err := ParseDisplayDate(row.Field(LabelNascimento))
	if err != nil {
		return "", err
	}
	hireDate, err := ParseDisplayDate(row.Field(LabelAdmissao))
	if err != nil {
		return "", err
	}

	name := row.Field(LabelNome)
	input := core.NewEmployee{
		Name:            name,
		CPF:             cpf,
		Email:           email,
		Phone:           row.Field(LabelTelefone),
		Address:         row.Field(LabelEndereco),
		BirthDate:       &birthDate,
		HireDate:        &hireDate,
		DepartmentID:    departmentID,
		PositionID:      positionID,
		PositionLevelID: levelID,
		ShiftID:         shiftID,
	}
	if err := r.Store.CreateEmployee(ctx, input); err != nil {
		// A concurrent row or request can win the uniqueness race after the
		// pre-check passed; that is a row failure, not a batch error.
		switch {
		case errors.Is(err, core.ErrDuplicateCPF):
			return "", fmt.Errorf("CPF já cadastrado: %s", cpf)
		case errors.Is(err, core.ErrDuplicateEmail):
			return "", fmt.Errorf("Email já cadastrado: %s", email)
		}
		return "", storeFailure(err)
	}
	return name, nil
}

func (r *Reconciler) processMedicalLeave(ctx context.Context, row Row) (string, error) {
	cpf := row.Field(LabelCPF)
	employeeID, err := r.Store.EmployeeIDByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, core.ErrEmployeeNotFound) {
			return "", fmt.Errorf("Funcionário não encontrado: CPF %s", cpf)
		}
		return "", storeFailure(err)
	}

	categoryName := row.Field(LabelCategoria)
	categoryID, err := r.Store.LeaveCategoryIDByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, medicalleave.ErrCategoryNotFound) {
			return "", fmt.Errorf("Categoria não encontrada: %s", categoryName)
		}
		return "", storeFailure(err)
	}

	startDate, err := ParseDisplayDate(row.Field(LabelDataInicio))
	if err != nil {
		return "", err
	}
	endDate, err := ParseDisplayDate(row.Field(LabelDataFim))
	if err != nil {
		return "", err
	}
	if endDate.Before(startDate) {
		return "", fmt.Errorf("Data de Fim anterior à Data de Início")
	}

	input := medicalleave.NewMedicalLeave{
		EmployeeID: employeeID,
		CategoryID: categoryID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     row.Field(LabelMotivo),
		CID:        row.Field(LabelCID),
		Doctor:     row.Field(LabelMedico),
		Hospital:   row.Field(LabelHospital),
		Notes:      row.Field(LabelObservacoes),
		Status:     strings.ToUpper(row.Field(LabelStatus)),
	}
	if err := r.Store.CreateMedicalLeave(ctx, input); err != nil {
		return "", storeFailure(err)
	}
	return cpf, nil
}

func (r *Reconciler) processTraining(ctx context.Context, row Row) (string, error) {
	hoursRaw := strings.ReplaceAll(row.Field(LabelCargaHoraria), ",", ".")
	hours, err := strconv.ParseFloat(hoursRaw, 64)
	if err != nil || hours < 0 {
		return "", fmt.Errorf("Carga horária inválida: %s", row.Field(LabelCargaHoraria))
	}

	startDate, err := ParseDisplayDate(row.Field(LabelDataInicio))
	if err != nil {
		return "", err
	}
	endDate, err := ParseDisplayDate(row.Field(LabelDataFim))
	if err != nil {
		return "", err
	}
	if endDate.Before(startDate) {
		return "", fmt.Errorf("Data de Fim anterior à Data de Início")
	}

	source := strings.ToUpper(row.Field(LabelOrigem))
	switch source {
	case "", training.SourceInternal, training.SourceExternal:
	case "INTERNO":
		source = training.SourceInternal
	case "EXTERNO":
		source = training.SourceExternal
	default:
		return "", fmt.Errorf("Origem inválida: %s", row.Field(LabelOrigem))
	}

	participantIDs, err := r.resolveParticipants(ctx, row.Field(LabelParticipantes))
	if err != nil {
		return "", err
	}

	name := row.Field(LabelNome)
	input := training.NewTraining{
		Name:        name,
		Category:    row.Field(LabelCategoria),
		Source:      source,
		Instructor:  row.Field(LabelInstrutor),
		Institution: row.Field(LabelInstituicao),
		StartDate:   &startDate,
		EndDate:     &endDate,
		Hours:       hours,
		Status:      strings.ToUpper(row.Field(LabelStatus)),
	}
	if err := r.Store.CreateTraining(ctx, input, participantIDs); err != nil {
		return "", storeFailure(err)
	}
	return name, nil
}

// resolveParticipants maps the comma-separated CPF list to employee ids; the
// CSV field delimiter is the semicolon, so CPFs inside the field use commas.
func (r *Reconciler) resolveParticipants(ctx context.Context, raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var ids []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		cpf := strings.TrimSpace(part)
		if cpf == "" || seen[cpf] {
			continue
		}
		seen[cpf] = true

		employeeID, err := r.Store.EmployeeIDByCPF(ctx, cpf)
		if err != nil {
			if errors.Is(err, core.ErrEmployeeNotFound) {
				return nil, fmt.Errorf("Participante não encontrado: CPF %s", cpf)
			}
			return nil, storeFailure(err)
		}
		ids = append(ids, employeeID)
	}
	return ids, nil
}

func (r *Reconciler) processCareer(ctx context.Context, row Row) (string, error) {
	cpf := row.Field(LabelCPF)
	employeeID, err := r.Store.EmployeeIDByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, core.ErrEmployeeNotFound) {
			return "", fmt.Errorf("Funcionário não encontrado: CPF %s", cpf)
		}
		return "", storeFailure(err)
	}

	departmentID, positionID, levelID, shiftID, err := r.resolveAssignment(ctx, row)
	if err != nil {
		return "", err
	}

	effectiveDate, err := ParseDisplayDate(row.Field(LabelDataMovimentacao))
	if err != nil {
		return "", err
	}

	event := CareerEvent{
		EmployeeID:      employeeID,
		DepartmentID:    departmentID,
		PositionID:      positionID,
		PositionLevelID: levelID,
		ShiftID:         shiftID,
		EffectiveDate:   effectiveDate,
	}
	if err := r.Store.RecordCareerEvent(ctx, event); err != nil {
		return "", storeFailure(err)
	}
	return cpf, nil
}

// resolveAssignment maps the textual department/position/level/shift chain to
// ids; each lookup is scoped by the previous resolution.
func (r *Reconciler) resolveAssignment(ctx context.Context, row Row) (departmentID, positionID, levelID, shiftID string, err error) {
	departmentName := row.Field(LabelDepartamento)
	departmentID, err = r.Store.DepartmentIDByName(ctx, departmentName)
	if err != nil {
		if errors.Is(err, core.ErrDepartmentNotFound) {
			return "", "", "", "", fmt.Errorf("Departamento não encontrado: %s", departmentName)
		}
		return "", "", "", "", storeFailure(err)
	}

	positionTitle := row.Field(LabelCargo)
	positionID, err = r.Store.PositionIDByTitle(ctx, departmentID, positionTitle)
	if err != nil {
		if errors.Is(err, core.ErrPositionNotFound) {
			return "", "", "", "", fmt.Errorf("Cargo não encontrado: %s", positionTitle)
		}
		return "", "", "", "", storeFailure(err)
	}

	levelName := row.Field(LabelFaixa)
	levelID, err = r.Store.PositionLevelIDByName(ctx, positionID, levelName)
	if err != nil {
		if errors.Is(err, core.ErrPositionLevelNotFound) {
			return "", "", "", "", fmt.Errorf("Faixa do cargo não encontrada: %s", levelName)
		}
		return "", "", "", "", storeFailure(err)
	}

	shiftName := row.Field(LabelTurno)
	shiftID, err = r.Store.ShiftIDByName(ctx, shiftName)
	if err != nil {
		if errors.Is(err, core.ErrShiftNotFound) {
			return "", "", "", "", fmt.Errorf("Turno não encontrado: %s", shiftName)
		}
		return "", "", "", "", storeFailure(err)
	}
	return departmentID, positionID, levelID, shiftID, nil
}

func storeFailure(err error) error {
	return fmt.Errorf("Erro ao processar registro: %v", err)
}
