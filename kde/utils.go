package kde

import "github.com/uyouii/automation-impact/model"

func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

func linspace(start, stop float64, num int) []float64 {
	if num < 2 {
		return []float64{start}
	}
	step := (stop - start) / float64(num-1)
	grid := make([]float64, num)
	for i := 0; i < num; i++ {
		grid[i] = start + float64(i)*step
	}
	return grid
}

// clipValues keeps the values inside clip, x must be sorted.
func clipValues(x []float64, clip *model.Clip) []float64 {
	if clip == nil {
		return x
	}
	res := make([]float64, 0, len(x))
	for _, v := range x {
		if clip.Contains(v) {
			res = append(res, v)
		}
	}
	return res
}

func uniformWeights(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = 1 / float64(n)
	}
	return res
}
