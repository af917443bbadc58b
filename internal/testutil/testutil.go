// Package testutil provides shared utilities for testing.
package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/palemoky/schooldata/internal/database"
)

// SetupTestDB creates an in-memory SQLite database with migrations applied.
// Returns the DB wrapper and Repository. Automatically cleans up on test completion.
func SetupTestDB(t *testing.T) (*database.DB, *database.Repository) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory database")

	// each connection to :memory: is its own database
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.NewDBFromGorm(gormDB)
	require.NoError(t, db.Migrate(), "Failed to run migrations")

	repo := database.NewRepository(db)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, repo
}

// Fixture is the small, fixed dataset inserted by SeedFixture
type Fixture struct {
	Students []*database.Student
	Teachers []*database.Teacher
	Courses  []*database.Course
	Grades   []*database.Grade
}

// SeedFixture inserts two classes, two teachers, three courses and a few grades.
func SeedFixture(t *testing.T, repo *database.Repository) *Fixture {
	t.Helper()

	f := &Fixture{
		Students: []*database.Student{
			{FirstName: "Max", LastName: "Mustermann", Class: "10a", BirthDate: "2009-03-15", Email: "max.mustermann@schule.de"},
			{FirstName: "Anna", LastName: "Schmidt", Class: "10a", BirthDate: "2009-07-22", Email: "anna.schmidt@schule.de"},
			{FirstName: "Tom", LastName: "Weber", Class: "5b", BirthDate: "2014-01-10", Email: "tom.weber@schule.de"},
		},
		Teachers: []*database.Teacher{
			{FirstName: "Petra", LastName: "Müller", Subject1: "Mathematik", Subject2: "Physik", Room: "A101"},
			{FirstName: "Sandra", LastName: "Wolf", Subject1: "Deutsch", Subject2: "Englisch", Room: "A203"},
		},
	}
	require.NoError(t, repo.InsertStudents(f.Students, 0, 0, nil))
	require.NoError(t, repo.InsertTeachers(f.Teachers))

	f.Courses = []*database.Course{
		{Subject: "Mathematik", Class: "10a", TeacherID: f.Teachers[0].ID},
		{Subject: "Deutsch", Class: "10a", TeacherID: f.Teachers[1].ID},
		{Subject: "Mathematik", Class: "5b", TeacherID: f.Teachers[0].ID},
	}
	require.NoError(t, repo.InsertCourses(f.Courses, 0))

	f.Grades = []*database.Grade{
		{StudentID: f.Students[0].ID, CourseID: f.Courses[0].ID, Value: 1.7, Date: "2026-09-10", Kind: database.GradeKindExam},
		{StudentID: f.Students[0].ID, CourseID: f.Courses[1].ID, Value: 2.3, Date: "2026-09-21", Kind: database.GradeKindOral},
		{StudentID: f.Students[1].ID, CourseID: f.Courses[0].ID, Value: 3.0, Date: "2026-09-12", Kind: database.GradeKindExam},
		{StudentID: f.Students[2].ID, CourseID: f.Courses[2].ID, Value: 2.0, Date: "2026-10-01", Kind: database.GradeKindOral},
	}
	require.NoError(t, repo.InsertGrades(f.Grades, 0, 0, nil))

	return f
}

// SetupTestGin creates a test Gin engine with test mode enabled.
func SetupTestGin() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
