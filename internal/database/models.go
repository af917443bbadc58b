package database

// Core table names
const (
	TableStudents = "schueler"
	TableTeachers = "lehrer"
	TableCourses  = "kurse"
	TableGrades   = "noten"
)

// CoreTables lists the schema tables in dependency order
var CoreTables = []string{TableStudents, TableTeachers, TableCourses, TableGrades}

// GradeKind is the category of a grade record
type GradeKind string

const (
	// GradeKindExam is a periodic written exam
	GradeKindExam GradeKind = "Klausur"
	// GradeKindOral is an oral grade
	GradeKindOral GradeKind = "mündlich"
)

// Student represents a pupil enrolled in one class
type Student struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"   json:"id"`
	FirstName string `gorm:"column:vorname;not null"     json:"vorname"`
	LastName  string `gorm:"column:nachname;not null"    json:"nachname"`
	Class     string `gorm:"column:klasse;not null;index" json:"klasse"`
	BirthDate string `gorm:"column:geburtsdatum"         json:"geburtsdatum"` // YYYY-MM-DD
	Email     string `gorm:"column:email"                json:"email"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return TableStudents
}

// Teacher represents a teacher qualified for exactly two subjects
type Teacher struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"column:vorname;not null"   json:"vorname"`
	LastName  string `gorm:"column:nachname;not null"  json:"nachname"`
	Subject1  string `gorm:"column:fach1;not null"     json:"fach1"`
	Subject2  string `gorm:"column:fach2;not null"     json:"fach2"`
	Room      string `gorm:"column:raum"               json:"raum"`
}

// TableName specifies the table name for Teacher
func (Teacher) TableName() string {
	return TableTeachers
}

// Teaches reports whether subject is one of the teacher's qualifications
func (t Teacher) Teaches(subject string) bool {
	return t.Subject1 == subject || t.Subject2 == subject
}

// Course binds a subject taught in one class to a teacher
type Course struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"      json:"id"`
	Subject   string `gorm:"column:fach;not null"           json:"fach"`
	Class     string `gorm:"column:klasse;not null;index"   json:"klasse"`
	TeacherID int64  `gorm:"column:lehrer_id;not null;index" json:"lehrer_id"`
}

// TableName specifies the table name for Course
func (Course) TableName() string {
	return TableCourses
}

// Grade is one mark a student received in a course
type Grade struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"         json:"id"`
	StudentID int64     `gorm:"column:schueler_id;not null;index" json:"schueler_id"`
	CourseID  int64     `gorm:"column:kurs_id;not null;index"     json:"kurs_id"`
	Value     float64   `gorm:"column:note;not null"              json:"note"`
	Date      string    `gorm:"column:datum"                      json:"datum"` // YYYY-MM-DD
	Kind      GradeKind `gorm:"column:art;not null"               json:"art"`
}

// TableName specifies the table name for Grade
func (Grade) TableName() string {
	return TableGrades
}

// TableCount is the row count of one table
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// GradeBucket counts how often a grade value occurs
type GradeBucket struct {
	Value float64 `json:"note"  gorm:"column:note"`
	Count int64   `json:"count" gorm:"column:count"`
}

// Statistics holds overall statistics
type Statistics struct {
	Tables       []TableCount  `json:"tables"`
	GradeBuckets []GradeBucket `json:"grades"`
	AverageGrade float64       `json:"average_grade"`
}
