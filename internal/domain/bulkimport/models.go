package bulkimport

// Row is one human-entered record keyed by display-language field labels.
type Row map[string]string

type Kind string

const (
	KindEmployees     Kind = "employees"
	KindMedicalLeaves Kind = "medical-leaves"
	KindTrainings     Kind = "trainings"
	KindCareer        Kind = "career"
)

func ParseKind(raw string) (Kind, bool) {
	switch Kind(raw) {
	case KindEmployees, KindMedicalLeaves, KindTrainings, KindCareer:
		return Kind(raw), true
	}
	return "", false
}

type RowSuccess struct {
	Row  int    `json:"row"`
	Name string `json:"name"`
}

type RowFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type Summary struct {
	Message    string       `json:"message"`
	Successful []RowSuccess `json:"successful"`
	Failed     []RowFailure `json:"failed"`
}
