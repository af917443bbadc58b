package database

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// ListStudents returns all students in insertion order
func (r *Repository) ListStudents() ([]Student, error) {
	var students []Student
	err := r.db.Order("id").Find(&students).Error
	return students, err
}

// ListStudentsByClass returns the roster of one class in insertion order
func (r *Repository) ListStudentsByClass(class string) ([]Student, error) {
	var students []Student
	err := r.db.Where("klasse = ?", class).Order("id").Find(&students).Error
	return students, err
}

// ListTeachers returns all teachers in declaration order
func (r *Repository) ListTeachers() ([]Teacher, error) {
	var teachers []Teacher
	err := r.db.Order("id").Find(&teachers).Error
	return teachers, err
}

// ListCourses returns all courses in insertion order
func (r *Repository) ListCourses() ([]Course, error) {
	var courses []Course
	err := r.db.Order("id").Find(&courses).Error
	return courses, err
}

// ListGradesByStudent returns every grade of one student
func (r *Repository) ListGradesByStudent(studentID int64) ([]Grade, error) {
	var grades []Grade
	err := r.db.Where("schueler_id = ?", studentID).Order("id").Find(&grades).Error
	return grades, err
}
