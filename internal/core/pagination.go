// AngelaMos | 2026
// pagination.go

package core

import (
	"net/http"
	"strconv"

	"github.com/carterperez-dev/templates/go-messages/internal/config"
)

type PageParams struct {
	Limit  int
	Offset int
}

// ParsePageParams reads limit and offset from the query string. Missing or
// malformed values fall back to the configured default, and limit is capped
// at the configured maximum.
func ParsePageParams(r *http.Request, cfg config.PagingConfig) PageParams {
	p := PageParams{
		Limit:  parseIntQuery(r, "limit", cfg.DefaultLimit),
		Offset: parseIntQuery(r, "offset", 0),
	}

	if p.Limit < 1 {
		p.Limit = cfg.DefaultLimit
	}
	if p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
