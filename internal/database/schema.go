package database

const (
	// Schema version, stored in PRAGMA user_version
	SchemaVersion = 1
)

// CreateTablesSQL contains all table creation statements.
// Dates are ISO text (YYYY-MM-DD); foreign keys are declared, not enforced.
var CreateTablesSQL = []string{
	// Students
	`CREATE TABLE IF NOT EXISTS schueler (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		vorname TEXT NOT NULL,
		nachname TEXT NOT NULL,
		klasse TEXT NOT NULL,
		geburtsdatum TEXT,
		email TEXT
	)`,

	// Teachers
	`CREATE TABLE IF NOT EXISTS lehrer (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		vorname TEXT NOT NULL,
		nachname TEXT NOT NULL,
		fach1 TEXT NOT NULL,
		fach2 TEXT NOT NULL,
		raum TEXT
	)`,

	// Courses
	`CREATE TABLE IF NOT EXISTS kurse (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fach TEXT NOT NULL,
		klasse TEXT NOT NULL,
		lehrer_id INTEGER NOT NULL,
		FOREIGN KEY (lehrer_id) REFERENCES lehrer(id)
	)`,

	// Grades
	`CREATE TABLE IF NOT EXISTS noten (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		schueler_id INTEGER NOT NULL,
		kurs_id INTEGER NOT NULL,
		note REAL NOT NULL,
		datum TEXT,
		art TEXT NOT NULL,
		FOREIGN KEY (schueler_id) REFERENCES schueler(id),
		FOREIGN KEY (kurs_id) REFERENCES kurse(id)
	)`,
}

// CreateIndexesSQL contains all index creation statements
var CreateIndexesSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_schueler_klasse ON schueler(klasse)`,
	`CREATE INDEX IF NOT EXISTS idx_kurse_klasse ON kurse(klasse)`,
	`CREATE INDEX IF NOT EXISTS idx_kurse_lehrer ON kurse(lehrer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_noten_schueler ON noten(schueler_id)`,
	`CREATE INDEX IF NOT EXISTS idx_noten_kurs ON noten(kurs_id)`,
}

// DropTablesSQL removes the schema, dependents first
var DropTablesSQL = []string{
	`DROP TABLE IF EXISTS noten`,
	`DROP TABLE IF EXISTS kurse`,
	`DROP TABLE IF EXISTS lehrer`,
	`DROP TABLE IF EXISTS schueler`,
}
