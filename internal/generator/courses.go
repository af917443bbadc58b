package generator

import (
	"errors"
	"fmt"

	"github.com/palemoky/schooldata/internal/database"
)

// ErrNoQualifiedTeacher is returned when no teacher teaches a required subject
var ErrNoQualifiedTeacher = errors.New("no qualified teacher")

// AllocateCourses creates one course per (class, subject) pair, classes outer
// and subjects inner, and assigns each a qualified teacher.
//
// A teacher is given at most maxPerSubject classes of the same subject; the
// choice among teachers still under that cap is uniform. When every qualified
// teacher is at the cap, the first qualified teacher in slice order takes the
// course and the counter is left alone, so the cap is soft.
//
// Teachers must carry distinct IDs; load is tracked per (teacher ID, subject).
func AllocateCourses(rc *RunContext, classes, subjects []string, teachers []database.Teacher, maxPerSubject int) ([]*database.Course, error) {
	courses := make([]*database.Course, 0, len(classes)*len(subjects))

	for _, class := range classes {
		for _, subject := range subjects {
			var qualified, candidates []database.Teacher
			for _, t := range teachers {
				if !t.Teaches(subject) {
					continue
				}
				qualified = append(qualified, t)
				if rc.subjectLoad[loadKey{t.ID, subject}] < maxPerSubject {
					candidates = append(candidates, t)
				}
			}

			if len(qualified) == 0 {
				return nil, fmt.Errorf("%w for %s", ErrNoQualifiedTeacher, subject)
			}

			var chosen database.Teacher
			if len(candidates) > 0 {
				chosen = candidates[rc.rng.IntN(len(candidates))]
				rc.subjectLoad[loadKey{chosen.ID, subject}]++
			} else {
				chosen = qualified[0]
				rc.fallbacks++
			}

			courses = append(courses, &database.Course{
				Subject:   subject,
				Class:     class,
				TeacherID: chosen.ID,
			})
		}
	}

	return courses, nil
}
