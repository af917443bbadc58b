package generator

import "time"

// German marking scale, best first
var gradeScale = [...]float64{1.0, 1.3, 1.7, 2.0, 2.3, 2.7, 3.0, 3.3, 3.7, 4.0, 4.3, 4.7, 5.0, 5.3, 5.7, 6.0}

// Relative weights per scale value; mass sits on 2.0–3.0
var gradeWeights = [len(gradeScale)]int{2, 4, 7, 11, 13, 14, 13, 10, 8, 6, 4, 3, 2, 1, 1, 1}

var gradeWeightTotal = func() int {
	total := 0
	for _, w := range gradeWeights {
		total += w
	}
	return total
}()

// GradeScale returns the 16 possible grade values
func GradeScale() []float64 {
	scale := make([]float64, len(gradeScale))
	copy(scale, gradeScale[:])
	return scale
}

// SampleGrade draws one grade from the weighted marking scale
func SampleGrade(src Source) float64 {
	r := src.IntN(gradeWeightTotal)
	for i, w := range gradeWeights {
		if r < w {
			return gradeScale[i]
		}
		r -= w
	}
	// unreachable: r < gradeWeightTotal
	return gradeScale[len(gradeScale)-1]
}

// SynthDate returns now minus a uniform number of days in [minDaysAgo, maxDaysAgo],
// formatted as YYYY-MM-DD. It panics on a negative or inverted window.
func SynthDate(src Source, now time.Time, minDaysAgo, maxDaysAgo int) string {
	if minDaysAgo < 0 || maxDaysAgo < minDaysAgo {
		panic("generator: invalid date window")
	}
	days := minDaysAgo + src.IntN(maxDaysAgo-minDaysAgo+1)
	return now.AddDate(0, 0, -days).Format(time.DateOnly)
}
