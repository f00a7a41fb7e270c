package bulkimport

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseCSVHandlesBOMAndSemicolons(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Nome;CPF;Email\nAna Silva;11111111111;ana@x.com\n")...)

	rows, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["Nome"] != "Ana Silva" || rows[0]["CPF"] != "11111111111" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestParseCSVEmptyFile(t *testing.T) {
	if _, err := ParseCSV(nil); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestTemplateRoundTrips(t *testing.T) {
	for _, kind := range []Kind{KindEmployees, KindMedicalLeaves, KindTrainings, KindCareer} {
		data := Template(kind)
		if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
			t.Fatalf("%s: template must start with a BOM", kind)
		}
		rows, err := ParseCSV(data)
		if err != nil {
			t.Fatalf("%s: ParseCSV: %v", kind, err)
		}
		if len(rows) != 1 {
			t.Fatalf("%s: expected the example row, got %d rows", kind, len(rows))
		}
		if label, missing := missingField(rows[0], kind); missing {
			t.Fatalf("%s: example row is missing %s", kind, label)
		}
	}
}

func TestParseDisplayDate(t *testing.T) {
	parsed, err := ParseDisplayDate("15/03/2024")
	if err != nil {
		t.Fatalf("ParseDisplayDate: %v", err)
	}
	if parsed.Year() != 2024 || parsed.Month() != 3 || parsed.Day() != 15 {
		t.Fatalf("unexpected date: %v", parsed)
	}

	for _, bad := range []string{"31/02/2024", "2024-03-15", "15/13/2024", ""} {
		_, err := ParseDisplayDate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", bad)
		}
		if bad != "" && !strings.Contains(err.Error(), bad) {
			t.Fatalf("error must echo the input, got: %v", err)
		}
	}
}

func TestRowFieldIsAccentInsensitive(t *testing.T) {
	row := Row{"Data de Admissao": "01/01/2024"}
	if got := row.Field(LabelAdmissao); got != "01/01/2024" {
		t.Fatalf("accentless header must resolve, got %q", got)
	}

	row = Row{"  nome  ": " Ana "}
	if got := row.Field(LabelNome); got != "Ana" {
		t.Fatalf("case and whitespace drift must resolve, got %q", got)
	}
}
