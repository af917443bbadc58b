package generator

import "github.com/palemoky/schooldata/internal/database"

// DefaultSubjects is the fixed subject list, in allocation order
var DefaultSubjects = []string{
	"Mathematik",
	"Deutsch",
	"Englisch",
	"Physik",
	"Biologie",
	"Geschichte",
	"Informatik",
	"Sport",
}

// DefaultTeachers is the fixed staff. Every subject is covered by four teachers.
var DefaultTeachers = []database.Teacher{
	{FirstName: "Petra", LastName: "Müller", Subject1: "Mathematik", Subject2: "Physik", Room: "A101"},
	{FirstName: "Thomas", LastName: "Klein", Subject1: "Deutsch", Subject2: "Geschichte", Room: "A102"},
	{FirstName: "Sandra", LastName: "Wolf", Subject1: "Englisch", Subject2: "Deutsch", Room: "A203"},
	{FirstName: "Michael", LastName: "Schneider", Subject1: "Biologie", Subject2: "Sport", Room: "C102"},
	{FirstName: "Julia", LastName: "Zimmermann", Subject1: "Informatik", Subject2: "Mathematik", Room: "B205"},
	{FirstName: "Andreas", LastName: "Braun", Subject1: "Geschichte", Subject2: "Englisch", Room: "A104"},
	{FirstName: "Katrin", LastName: "Hofmann", Subject1: "Physik", Subject2: "Informatik", Room: "B110"},
	{FirstName: "Stefan", LastName: "Krüger", Subject1: "Sport", Subject2: "Biologie", Room: "Turnhalle"},
	{FirstName: "Claudia", LastName: "Hartmann", Subject1: "Mathematik", Subject2: "Biologie", Room: "C105"},
	{FirstName: "Markus", LastName: "Lange", Subject1: "Deutsch", Subject2: "Sport", Room: "A106"},
	{FirstName: "Birgit", LastName: "Schmitt", Subject1: "Englisch", Subject2: "Geschichte", Room: "A207"},
	{FirstName: "Frank", LastName: "Werner", Subject1: "Physik", Subject2: "Mathematik", Room: "B112"},
	{FirstName: "Monika", LastName: "Krause", Subject1: "Informatik", Subject2: "Englisch", Room: "B206"},
	{FirstName: "Jürgen", LastName: "Meier", Subject1: "Biologie", Subject2: "Physik", Room: "C108"},
	{FirstName: "Sabine", LastName: "Lehmann", Subject1: "Deutsch", Subject2: "Informatik", Room: "B207"},
	{FirstName: "Uwe", LastName: "Schmid", Subject1: "Geschichte", Subject2: "Sport", Room: "A108"},
}

// newTeacherRows copies the staff list into fresh rows ready for insertion
func newTeacherRows(staff []database.Teacher) []*database.Teacher {
	rows := make([]*database.Teacher, len(staff))
	for i := range staff {
		t := staff[i]
		t.ID = 0
		rows[i] = &t
	}
	return rows
}
