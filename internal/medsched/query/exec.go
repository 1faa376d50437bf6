package query

import (
	"context"
	"fmt"

	"github.com/vaibhaw-/medsched/internal/medsched/logger"
	"github.com/vaibhaw-/medsched/internal/medsched/store"
)

// Execute runs one catalog report against q and collects every row.
// Text columns some drivers return as []byte are converted to string.
func Execute(ctx context.Context, q store.Querier, d store.Dialect, r Report, p Params) (*Result, error) {
	query := d.Rebind(r.SQL(d))
	args := r.Args(p)
	logger.L().Debugw("Running report", "report", r.Name, "args", args)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", r.Name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("report %s: columns: %w", r.Name, err)
	}

	res := &Result{Name: r.Name, Title: r.Title, Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("report %s: scan: %w", r.Name, err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report %s: %w", r.Name, err)
	}

	logger.L().Infow("Report complete", "report", r.Name, "rows", len(res.Rows))
	return res, nil
}
