package simulate

import (
	"fmt"

	"github.com/okian/judgeboard/internal/domain/numeric"
	"github.com/okian/judgeboard/internal/domain/types"
)

// Verify checks that served and local rankings agree entry by entry on
// bib, rank, total and completeness.
func Verify(served, local []types.RankedEntry) error {
	if len(served) != len(local) {
		return fmt.Errorf("%w: served %d entries, expected %d", ErrMismatch, len(served), len(local))
	}
	for i := range local {
		s, l := served[i], local[i]
		switch {
		case s.Bib != l.Bib:
			return fmt.Errorf("%w: position %d holds bib %s, expected %s", ErrMismatch, i+1, s.Bib, l.Bib)
		case s.Rank != l.Rank:
			return fmt.Errorf("%w: bib %s ranked %d, expected %d", ErrMismatch, s.Bib, s.Rank, l.Rank)
		case !sameTotal(s.Total, l.Total):
			return fmt.Errorf("%w: bib %s total %s, expected %s", ErrMismatch, s.Bib, fmtTotal(s.Total), fmtTotal(l.Total))
		case s.Complete != l.Complete:
			return fmt.Errorf("%w: bib %s complete=%t, expected %t", ErrMismatch, s.Bib, s.Complete, l.Complete)
		}
	}
	return nil
}

func sameTotal(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return numeric.Equal(*a, *b)
}

func fmtTotal(v *float64) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%.2f", *v)
}
