package core

import (
	"context"
	"fmt"
)

// FormatMatricula renders a sequence value as the human-readable employee
// code. The sequence lives in the database so concurrent bulk imports can
// never hand out the same code.
func FormatMatricula(seq int64) string {
	return fmt.Sprintf("MAT-%06d", seq)
}

func (s *Store) NextMatricula(ctx context.Context, q Querier) (string, error) {
	var seq int64
	if err := q.QueryRow(ctx, "SELECT nextval('employee_matricula_seq')").Scan(&seq); err != nil {
		return "", err
	}
	return FormatMatricula(seq), nil
}
