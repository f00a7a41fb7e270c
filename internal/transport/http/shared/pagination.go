package shared

import (
	"net/http"
	"strconv"
)

// Pagination bounds list queries. The employee listing is the only surface
// expected to grow past one page; its handler passes the default and cap.
type Pagination struct {
	Limit  int
	Offset int
}

func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	p := Pagination{Limit: defaultLimit}
	if v := queryInt(r, "limit"); v > 0 {
		p.Limit = v
	}
	if v := queryInt(r, "offset"); v > 0 {
		p.Offset = v
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
