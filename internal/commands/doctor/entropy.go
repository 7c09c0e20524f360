package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/glyphpad/glyph/pkg/cuid"
)

// entropySample is the number of base-36 digits the entropy probes draw.
// 1000 draws per symbol on average, enough that a missing symbol or a
// grossly skewed count means a broken source rather than bad luck.
const entropySample = 36000

const base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// EntropyCheck samples the random source behind ID generation and verifies
// coverage and coarse uniformity across the base-36 alphabet.
type EntropyCheck struct{}

// NewEntropyCheck creates a new entropy check.
func NewEntropyCheck() *EntropyCheck {
	return &EntropyCheck{}
}

func (c *EntropyCheck) Name() string {
	return "Entropy"
}

func (c *EntropyCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	sample, err := cuid.Entropy(entropySample)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Sample",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}
	if len(sample) != entropySample {
		result.Items = append(result.Items, CheckItem{
			Label:  "Sample",
			Status: StatusFail,
			Detail: fmt.Sprintf("drew %d digits, want %d", len(sample), entropySample),
		})
		return result
	}

	counts := make(map[rune]int, 36)
	for _, r := range sample {
		counts[r]++
	}

	result.Items = append(result.Items, coverageItem(counts))
	result.Items = append(result.Items, uniformityItem(counts))
	return result
}

// coverageItem verifies every base-36 symbol appeared in the sample.
func coverageItem(counts map[rune]int) CheckItem {
	item := CheckItem{Label: "Symbol coverage"}

	var missing []string
	for _, r := range base36Digits {
		if counts[r] == 0 {
			missing = append(missing, string(r))
		}
	}
	if len(missing) > 0 {
		item.Status = StatusFail
		item.Detail = "missing symbols: " + strings.Join(missing, " ")
		return item
	}
	if len(counts) > 36 {
		item.Status = StatusFail
		item.Detail = fmt.Sprintf("sample contains %d distinct symbols, want 36", len(counts))
		return item
	}

	item.Status = StatusPass
	item.Detail = "all 36 symbols present"
	return item
}

// uniformityItem verifies no symbol count strays outside half to double the
// expected share. The bounds are over twenty standard deviations wide, so a
// hit means the source is broken, not unlucky.
func uniformityItem(counts map[rune]int) CheckItem {
	item := CheckItem{Label: "Distribution"}

	expected := entropySample / 36
	low, high := expected/2, expected*2

	for _, r := range base36Digits {
		n := counts[r]
		if n < low || n > high {
			item.Status = StatusFail
			item.Detail = fmt.Sprintf("symbol %q drawn %d times, expected about %d", r, n, expected)
			return item
		}
	}

	item.Status = StatusPass
	item.Detail = fmt.Sprintf("%d draws within coarse uniform bounds", entropySample)
	return item
}
