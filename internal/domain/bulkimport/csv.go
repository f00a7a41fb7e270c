package bulkimport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads the semicolon-delimited template format (UTF-8, optional
// BOM, quoted fields) into rows keyed by the header labels.
func ParseCSV(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("arquivo vazio")
	}
	if err != nil {
		return nil, fmt.Errorf("cabeçalho inválido: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("linha %d inválida: %w", len(rows)+2, err)
		}
		row := make(Row, len(header))
		for i, label := range header {
			if i < len(record) {
				row[label] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Template renders the CSV header (plus one illustrative row) for a kind,
// BOM-prefixed so spreadsheet tools open it as UTF-8.
func Template(kind Kind) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writer := csv.NewWriter(&buf)
	writer.Comma = ';'

	header := requiredFields(kind)
	switch kind {
	case KindEmployees:
		header = append(header, LabelTelefone, LabelEndereco)
	case KindMedicalLeaves:
		header = append(header, LabelMotivo, LabelCID, LabelMedico, LabelHospital, LabelObservacoes)
	case KindTrainings:
		header = append(header, LabelOrigem, LabelInstrutor, LabelInstituicao, LabelStatus, LabelParticipantes)
	}
	_ = writer.Write(header)
	_ = writer.Write(exampleRow(kind, header))
	writer.Flush()
	return buf.Bytes()
}

func exampleRow(kind Kind, header []string) []string {
	examples := map[string]string{
		LabelNome:             "Ana Silva",
		LabelCPF:              "11111111111",
		LabelEmail:            "ana@exemplo.com",
		LabelDepartamento:     "TI",
		LabelCargo:            "Analista",
		LabelFaixa:            "Pleno",
		LabelTurno:            "Turno A",
		LabelNascimento:       "01/01/1990",
		LabelAdmissao:         "01/01/2024",
		LabelCategoria:        "Doença",
		LabelDataInicio:       "01/03/2024",
		LabelDataFim:          "05/03/2024",
		LabelCargaHoraria:     "16",
		LabelParticipantes:    "11111111111, 22222222222",
		LabelDataMovimentacao: "01/06/2024",
	}
	row := make([]string, len(header))
	for i, label := range header {
		row[i] = examples[label]
	}
	return row
}
