package main

import (
	"fmt"
	"time"

	"github.com/adigitale/carnet/pkg/ledger"
)

type filters struct {
	status string
	search string
	from   string
	to     string
	sortBy string
}

func (f *filters) toFilter() (ledger.Filter, error) {
	out := ledger.Filter{
		Status: ledger.StatusFilter(f.status),
		Search: f.search,
	}

	if f.from != "" {
		from, err := time.Parse("2006-01-02", f.from)
		if err != nil {
			return out, fmt.Errorf("invalid --from date %q: %w", f.from, err)
		}
		out.From = from
	}
	if f.to != "" {
		to, err := time.Parse("2006-01-02", f.to)
		if err != nil {
			return out, fmt.Errorf("invalid --to date %q: %w", f.to, err)
		}
		out.To = to
	}
	return out, nil
}

func (f *filters) toSort() ledger.Sort {
	return ledger.Sort(f.sortBy)
}
