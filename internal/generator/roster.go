package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/schooldata/internal/database"
)

// EmailDomain is the school's mail domain
const EmailDomain = "schule.de"

// DefaultBirthYear is used for classes whose grade level is not in the table
const DefaultBirthYear = 2010

var birthYearByGrade = map[int]int{
	5:  2014,
	6:  2013,
	7:  2012,
	8:  2011,
	9:  2010,
	10: 2009,
}

// BirthYear maps a class label such as "7b" to the birth year of its students.
// The grade level is the leading number of the label.
func BirthYear(class string) int {
	digits := class
	if i := strings.IndexFunc(class, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		digits = class[:i]
	}
	grade, err := strconv.Atoi(digits)
	if err != nil {
		return DefaultBirthYear
	}
	if year, ok := birthYearByGrade[grade]; ok {
		return year
	}
	return DefaultBirthYear
}

// Email builds the lowercase school address for a student
func Email(first, last string) string {
	return strings.ToLower(fmt.Sprintf("%s.%s@%s", first, last, EmailDomain))
}

// GenerateRoster creates perClass students for every class, in class order.
// Birth days stay within 1..28 so every month is valid.
func GenerateRoster(rc *RunContext, classes []string, perClass int) []*database.Student {
	students := make([]*database.Student, 0, len(classes)*perClass)
	for _, class := range classes {
		year := BirthYear(class)
		for i := 0; i < perClass; i++ {
			first, last := rc.DrawName(class)
			month := 1 + rc.rng.IntN(12)
			day := 1 + rc.rng.IntN(28)
			students = append(students, &database.Student{
				FirstName: first,
				LastName:  last,
				Class:     class,
				BirthDate: fmt.Sprintf("%04d-%02d-%02d", year, month, day),
				Email:     Email(first, last),
			})
		}
	}
	return students
}
