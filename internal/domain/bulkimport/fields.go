package bulkimport

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Display labels as they appear in the CSV template header.
const (
	LabelNome             = "Nome"
	LabelCPF              = "CPF"
	LabelEmail            = "Email"
	LabelTelefone         = "Telefone"
	LabelEndereco         = "Endereço"
	LabelDepartamento     = "Departamento"
	LabelCargo            = "Cargo"
	LabelFaixa            = "Faixa do Cargo"
	LabelTurno            = "Turno"
	LabelNascimento       = "Data de Nascimento"
	LabelAdmissao         = "Data de Admissão"
	LabelCategoria        = "Categoria"
	LabelDataInicio       = "Data de Início"
	LabelDataFim          = "Data de Fim"
	LabelMotivo           = "Motivo"
	LabelCID              = "CID"
	LabelMedico           = "Médico"
	LabelHospital         = "Hospital"
	LabelObservacoes      = "Observações"
	LabelOrigem           = "Origem"
	LabelInstrutor        = "Instrutor"
	LabelInstituicao      = "Instituição"
	LabelCargaHoraria     = "Carga Horária"
	LabelStatus           = "Status"
	LabelParticipantes    = "Participantes (CPFs)"
	LabelDataMovimentacao = "Data da Movimentação"
)

func requiredFields(kind Kind) []string {
	switch kind {
	case KindEmployees:
		return []string{LabelNome, LabelCPF, LabelEmail, LabelDepartamento, LabelCargo, LabelFaixa, LabelTurno, LabelNascimento, LabelAdmissao}
	case KindMedicalLeaves:
		return []string{LabelCPF, LabelCategoria, LabelDataInicio, LabelDataFim}
	case KindTrainings:
		return []string{LabelNome, LabelCategoria, LabelDataInicio, LabelDataFim, LabelCargaHoraria}
	case KindCareer:
		return []string{LabelCPF, LabelDepartamento, LabelCargo, LabelFaixa, LabelTurno, LabelDataMovimentacao}
	}
	return nil
}

// Field looks a label up tolerating accent and case drift in the header
// ("Data de Admissao" matches "Data de Admissão").
func (r Row) Field(label string) string {
	if value, ok := r[label]; ok {
		return strings.TrimSpace(value)
	}
	want := normalizeLabel(label)
	for key, value := range r {
		if normalizeLabel(key) == want {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func normalizeLabel(label string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(label)))
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// missingField returns the first structurally required label absent from the
// row, in declaration order so failure messages are deterministic.
func missingField(row Row, kind Kind) (string, bool) {
	for _, label := range requiredFields(kind) {
		if row.Field(label) == "" {
			return label, true
		}
	}
	return "", false
}
