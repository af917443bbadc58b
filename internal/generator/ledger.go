package generator

import "github.com/palemoky/schooldata/internal/database"

const (
	ExamsPerCourse = 2
	OralsPerCourse = 3
)

// examWindow is the days-ago window of the i-th exam, i from 0
func examWindow(i int) (minDays, maxDays int) {
	return 10 + 40*i, 50 + 40*i
}

// oralWindow is the days-ago window of the i-th oral grade, i from 0
func oralWindow(i int) (minDays, maxDays int) {
	return 5 + 30*i, 25 + 30*i
}

// GenerateGrades writes the grade ledger: for every student and every course
// of the student's class, ExamsPerCourse exams followed by OralsPerCourse oral
// grades. Students and courses must already carry their IDs.
func GenerateGrades(rc *RunContext, students []database.Student, courses []database.Course) []*database.Grade {
	byClass := make(map[string][]database.Course)
	for _, c := range courses {
		byClass[c.Class] = append(byClass[c.Class], c)
	}

	var grades []*database.Grade
	for _, s := range students {
		for _, c := range byClass[s.Class] {
			for i := 0; i < ExamsPerCourse; i++ {
				lo, hi := examWindow(i)
				grades = append(grades, newGrade(rc, s.ID, c.ID, database.GradeKindExam, lo, hi))
			}
			for i := 0; i < OralsPerCourse; i++ {
				lo, hi := oralWindow(i)
				grades = append(grades, newGrade(rc, s.ID, c.ID, database.GradeKindOral, lo, hi))
			}
		}
	}
	return grades
}

func newGrade(rc *RunContext, studentID, courseID int64, kind database.GradeKind, minDays, maxDays int) *database.Grade {
	value := SampleGrade(rc.rng)
	return &database.Grade{
		StudentID: studentID,
		CourseID:  courseID,
		Value:     value,
		Date:      SynthDate(rc.rng, rc.now, minDays, maxDays),
		Kind:      kind,
	}
}
