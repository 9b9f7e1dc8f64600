package sections

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// ParseCategories resolves user-supplied section names such as "IP" or
// "Payment Terms". Duplicates collapse; order follows the input.
func ParseCategories(names []string) ([]constants.Category, error) {
	var out []constants.Category
	seen := make(map[constants.Category]bool, len(names))
	for _, n := range names {
		cat, ok := constants.Canonicalize(n)
		if !ok {
			return nil, fmt.Errorf("%w: unknown section %q (want one of %s)",
				common.ErrInvalidInput, n, strings.Join(constants.AsStringSlice(), ", "))
		}
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out, nil
}

// Only keeps the sections whose key is in cats, in analysis order. An empty
// cats keeps everything.
func Only(all []entity.SectionAnalysis, cats []constants.Category) []entity.SectionAnalysis {
	if len(cats) == 0 {
		return all
	}
	want := make(map[string]bool, len(cats))
	for _, c := range cats {
		want[string(c)] = true
	}
	out := make([]entity.SectionAnalysis, 0, len(cats))
	for _, sa := range all {
		if want[sa.Key] {
			out = append(out, sa)
		}
	}
	return out
}
