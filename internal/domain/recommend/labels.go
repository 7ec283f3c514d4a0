package recommend

import "sort"

// LabelEncoder is a multi-label binarizer over job titles.
// Classes declared up front are kept even when no row carries them, until DropUnused removes them.
type LabelEncoder struct {
	declared []string
}

func NewLabelEncoder(classes ...string) *LabelEncoder {
	return &LabelEncoder{declared: classes}
}

// Fit returns the sorted label space and a row-major binary matrix (rows = label sets).
func (e *LabelEncoder) Fit(labelSets [][]string) ([]string, [][]bool) {
	seen := map[string]struct{}{}
	for _, c := range e.declared {
		seen[c] = struct{}{}
	}
	for _, set := range labelSets {
		for _, l := range set {
			seen[l] = struct{}{}
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	col := make(map[string]int, len(labels))
	for i, l := range labels {
		col[l] = i
	}

	y := make([][]bool, len(labelSets))
	for r, set := range labelSets {
		row := make([]bool, len(labels))
		for _, l := range set {
			row[col[l]] = true
		}
		y[r] = row
	}
	return labels, y
}

// DropUnused removes labels with no positive row from both the label space and the matrix.
// The returned label order matches the returned matrix columns.
func DropUnused(labels []string, y [][]bool) ([]string, [][]bool) {
	keep := make([]int, 0, len(labels))
	for c := range labels {
		for _, row := range y {
			if row[c] {
				keep = append(keep, c)
				break
			}
		}
	}
	if len(keep) == len(labels) {
		return labels, y
	}

	outLabels := make([]string, 0, len(keep))
	for _, c := range keep {
		outLabels = append(outLabels, labels[c])
	}
	outY := make([][]bool, len(y))
	for r, row := range y {
		nr := make([]bool, len(keep))
		for k, c := range keep {
			nr[k] = row[c]
		}
		outY[r] = nr
	}
	return outLabels, outY
}

func singletonLabelSets(titles []string) [][]string {
	out := make([][]string, 0, len(titles))
	for _, t := range titles {
		out = append(out, []string{t})
	}
	return out
}
