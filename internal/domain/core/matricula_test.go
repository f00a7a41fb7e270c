package core

import "testing"

func TestFormatMatricula(t *testing.T) {
	cases := []struct {
		seq  int64
		want string
	}{
		{1, "MAT-000001"},
		{42, "MAT-000042"},
		{123456, "MAT-123456"},
		{9999999, "MAT-9999999"},
	}
	for _, tc := range cases {
		if got := FormatMatricula(tc.seq); got != tc.want {
			t.Fatalf("FormatMatricula(%d) = %s, want %s", tc.seq, got, tc.want)
		}
	}
}
