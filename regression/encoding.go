package regression

import "sort"

// EncodeOrdinal maps every distinct category to an integer code in order of
// first appearance. codes[i] is the category encoded as i.
func EncodeOrdinal(categories []string) ([]float64, []string) {
	index := map[string]int{}
	codes := []string{}
	xs := make([]float64, len(categories))
	for i, c := range categories {
		code, ok := index[c]
		if !ok {
			code = len(codes)
			index[c] = code
			codes = append(codes, c)
		}
		xs[i] = float64(code)
	}
	return xs, codes
}

// EncodeOneHot builds dummy columns for every category except the baseline,
// which is the first category in sorted order. rows[i][j] is 1 when
// categories[i] == levels[j].
func EncodeOneHot(categories []string) (rows [][]float64, baseline string, levels []string) {
	distinct := map[string]struct{}{}
	for _, c := range categories {
		distinct[c] = struct{}{}
	}
	all := make([]string, 0, len(distinct))
	for c := range distinct {
		all = append(all, c)
	}
	sort.Strings(all)
	if len(all) == 0 {
		return nil, "", nil
	}

	baseline, levels = all[0], all[1:]
	column := make(map[string]int, len(levels))
	for j, l := range levels {
		column[l] = j
	}

	rows = make([][]float64, len(categories))
	for i, c := range categories {
		rows[i] = make([]float64, len(levels))
		if j, ok := column[c]; ok {
			rows[i][j] = 1
		}
	}
	return rows, baseline, levels
}
