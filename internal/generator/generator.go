package generator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vbauerster/mpb/v8"
	"go.uber.org/zap"

	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/logger"
)

// Store is the persistence the generator writes through.
// *database.Repository satisfies it.
type Store interface {
	InsertStudents(students []*database.Student, transactionSize, batchSize int, progress *mpb.Progress) error
	InsertTeachers(teachers []*database.Teacher) error
	InsertCourses(courses []*database.Course, batchSize int) error
	InsertGrades(grades []*database.Grade, transactionSize, batchSize int, progress *mpb.Progress) error
	ListStudents() ([]database.Student, error)
	ListTeachers() ([]database.Teacher, error)
	ListCourses() ([]database.Course, error)
}

// Resetter discards all data and recreates the schema. *database.DB satisfies it.
type Resetter interface {
	Reset() error
}

// Options controls a generation run
type Options struct {
	Classes          []string
	Subjects         []string
	Teachers         []database.Teacher
	StudentsPerClass int
	MaxPerSubject    int

	// Seed 0 means: pick one from the clock and report it
	Seed uint64

	BatchSize       int
	TransactionSize int
	Progress        bool

	// Now overrides the run's reference time
	Now func() time.Time
}

// RunReport summarizes a finished run
type RunReport struct {
	RunID        string
	Seed         uint64
	Students     int
	Teachers     int
	Courses      int
	Grades       int
	CapFallbacks int
	Duration     time.Duration
}

// Generator rebuilds the school dataset from scratch
type Generator struct {
	schema Resetter
	store  Store
	opts   Options
	log    *zap.Logger
}

// New creates a generator. Empty subject and teacher lists fall back to the defaults.
func New(schema Resetter, store Store, opts Options) *Generator {
	if len(opts.Subjects) == 0 {
		opts.Subjects = DefaultSubjects
	}
	if len(opts.Teachers) == 0 {
		opts.Teachers = DefaultTeachers
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{
		schema: schema,
		store:  store,
		opts:   opts,
		log:    logger.Named("generator"),
	}
}

// Run resets the database and generates students, teachers, courses and
// grades, in that order. Courses are allocated from the teachers as stored,
// and grades from the students and courses as stored, so every foreign key
// refers to a persisted row.
func (g *Generator) Run(ctx context.Context) (*RunReport, error) {
	start := time.Now()

	seed := g.opts.Seed
	if seed == 0 {
		seed = ClockSeed()
	}
	report := &RunReport{RunID: uuid.NewString(), Seed: seed}
	log := g.log.With(zap.String("run_id", report.RunID), zap.Uint64("seed", seed))

	rc := NewRunContext(NewSource(seed), g.opts.Now())

	var progress *mpb.Progress
	if g.opts.Progress {
		progress = mpb.NewWithContext(ctx,
			mpb.WithOutput(os.Stderr),
			mpb.WithWidth(60),
			mpb.WithRefreshRate(100*time.Millisecond),
		)
	}

	err := g.run(ctx, rc, progress, report, log)
	if progress != nil {
		progress.Wait()
	}
	if err != nil {
		log.Error("Generation failed", zap.Error(err))
		return nil, err
	}

	report.CapFallbacks = rc.CapFallbacks()
	report.Duration = time.Since(start)

	if report.CapFallbacks > 0 {
		log.Warn("Courses assigned past the per-subject cap",
			zap.Int("courses", report.CapFallbacks),
			zap.Int("cap", g.opts.MaxPerSubject))
	}
	log.Info("Generation finished",
		zap.Int("students", report.Students),
		zap.Int("teachers", report.Teachers),
		zap.Int("courses", report.Courses),
		zap.Int("grades", report.Grades),
		zap.Duration("duration", report.Duration))

	return report, nil
}

func (g *Generator) run(ctx context.Context, rc *RunContext, progress *mpb.Progress, report *RunReport, log *zap.Logger) error {
	if err := g.schema.Reset(); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	log.Debug("Schema reset")

	// Students
	if err := ctx.Err(); err != nil {
		return err
	}
	roster := GenerateRoster(rc, g.opts.Classes, g.opts.StudentsPerClass)
	if err := g.store.InsertStudents(roster, g.opts.TransactionSize, g.opts.BatchSize, progress); err != nil {
		return fmt.Errorf("failed to insert students: %w", err)
	}
	report.Students = len(roster)
	log.Debug("Students inserted", zap.Int("count", len(roster)))

	// Teachers
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.store.InsertTeachers(newTeacherRows(g.opts.Teachers)); err != nil {
		return fmt.Errorf("failed to insert teachers: %w", err)
	}
	teachers, err := g.store.ListTeachers()
	if err != nil {
		return fmt.Errorf("failed to read teachers: %w", err)
	}
	report.Teachers = len(teachers)

	// Courses
	if err := ctx.Err(); err != nil {
		return err
	}
	courses, err := AllocateCourses(rc, g.opts.Classes, g.opts.Subjects, teachers, g.opts.MaxPerSubject)
	if err != nil {
		return fmt.Errorf("failed to allocate courses: %w", err)
	}
	if err := g.store.InsertCourses(courses, g.opts.BatchSize); err != nil {
		return fmt.Errorf("failed to insert courses: %w", err)
	}
	report.Courses = len(courses)
	log.Debug("Courses inserted", zap.Int("count", len(courses)))

	// Grades
	if err := ctx.Err(); err != nil {
		return err
	}
	students, err := g.store.ListStudents()
	if err != nil {
		return fmt.Errorf("failed to read students: %w", err)
	}
	stored, err := g.store.ListCourses()
	if err != nil {
		return fmt.Errorf("failed to read courses: %w", err)
	}
	grades := GenerateGrades(rc, students, stored)
	if err := g.store.InsertGrades(grades, g.opts.TransactionSize, g.opts.BatchSize, progress); err != nil {
		return fmt.Errorf("failed to insert grades: %w", err)
	}
	report.Grades = len(grades)

	return nil
}
