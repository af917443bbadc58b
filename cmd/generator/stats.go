package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/palemoky/schooldata/internal/database"
)

func newStatsCmd() *cobra.Command {
	var class string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print row counts and the grade distribution",
		Long:  "Print row counts and the grade distribution, or with --class the roster of one class with each student's grades",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.OpenReadOnly(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			repo := database.NewRepository(db)
			if class != "" {
				return renderClassReport(cmd.OutOrStdout(), repo, class)
			}

			stats, err := repo.GetStatistics()
			if err != nil {
				return fmt.Errorf("failed to read statistics: %w", err)
			}
			return renderStatistics(cmd.OutOrStdout(), stats)
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "Show the roster and grades of one class, e.g. 10a")
	return cmd
}

// classRoster is the read side needed for a per-class report
type classRoster interface {
	ListStudentsByClass(class string) ([]database.Student, error)
	ListGradesByStudent(studentID int64) ([]database.Grade, error)
}

// renderClassReport prints one row per student with exam, oral and overall averages
func renderClassReport(w io.Writer, repo classRoster, class string) error {
	students, err := repo.ListStudentsByClass(class)
	if err != nil {
		return fmt.Errorf("failed to list class %s: %w", class, err)
	}
	if len(students) == 0 {
		return fmt.Errorf("class %q has no students", class)
	}

	fmt.Fprintf(w, "\n=== Klasse %s (%d students) ===\n", class, len(students))

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Grades", "Klausur", "mündlich", "Average")
	for _, s := range students {
		grades, err := repo.ListGradesByStudent(s.ID)
		if err != nil {
			return fmt.Errorf("failed to list grades of student %d: %w", s.ID, err)
		}

		var exams, orals []float64
		for _, g := range grades {
			if g.Kind == database.GradeKindExam {
				exams = append(exams, g.Value)
			} else {
				orals = append(orals, g.Value)
			}
		}

		row := []string{
			strconv.FormatInt(s.ID, 10),
			s.FirstName + " " + s.LastName,
			strconv.Itoa(len(grades)),
			formatAverage(exams),
			formatAverage(orals),
			formatAverage(append(exams, orals...)),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatAverage(values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return strconv.FormatFloat(sum/float64(len(values)), 'f', 2, 64)
}

// renderStatistics prints the table counts and the grade histogram
func renderStatistics(w io.Writer, stats *database.Statistics) error {
	fmt.Fprintln(w, "\n=== Database Statistics ===")

	tables := tablewriter.NewWriter(w)
	tables.Header("Table", "Rows")
	for _, tc := range stats.Tables {
		if err := tables.Append([]string{tc.Table, strconv.FormatInt(tc.Rows, 10)}); err != nil {
			return err
		}
	}
	if err := tables.Render(); err != nil {
		return err
	}

	if len(stats.GradeBuckets) == 0 {
		return nil
	}

	var total int64
	for _, b := range stats.GradeBuckets {
		total += b.Count
	}

	fmt.Fprintf(w, "\nGrades (average %.2f)\n", stats.AverageGrade)
	grades := tablewriter.NewWriter(w)
	grades.Header("Note", "Count", "Share")
	for _, b := range stats.GradeBuckets {
		share := float64(b.Count) / float64(total) * 100
		row := []string{
			strconv.FormatFloat(b.Value, 'f', 1, 64),
			strconv.FormatInt(b.Count, 10),
			fmt.Sprintf("%.1f%%", share),
		}
		if err := grades.Append(row); err != nil {
			return err
		}
	}
	return grades.Render()
}
