package postgres

import (
	"fmt"
	"strings"

	"github.com/nikicasio/traffic-alert-app/internal/domain"
)

// alertPredicate turns a filter into a WHERE clause with positional args.
// It is pure so the generated SQL can be checked without a database.
func alertPredicate(f domain.AlertFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	conds = append(conds, "is_active = true")
	conds = append(conds, "(expires_at IS NULL OR expires_at > "+arg(f.ActiveAt)+")")
	conds = append(conds, "lat BETWEEN "+arg(f.MinLat)+" AND "+arg(f.MaxLat))
	if !f.AllLng {
		conds = append(conds, "lng BETWEEN "+arg(f.MinLng)+" AND "+arg(f.MaxLng))
	}
	if f.Type != nil {
		conds = append(conds, "type = "+arg(string(*f.Type)))
	}
	if f.Severity != nil {
		conds = append(conds, "severity = "+arg(*f.Severity))
	}

	return strings.Join(conds, " AND "), args
}
