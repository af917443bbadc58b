package generator

import "fmt"

// MaxNameAttempts bounds how often a colliding surname is redrawn
// before a numeric suffix is appended.
const MaxNameAttempts = 10

// NamePool holds the first name pools per sex and the shared surname pool
type NamePool struct {
	Female   []string
	Male     []string
	Surnames []string
}

// DefaultNamePool contains common German names
var DefaultNamePool = NamePool{
	Female: []string{
		"Anna", "Emma", "Mia", "Sophia", "Hannah", "Lena", "Lea", "Marie", "Lina", "Laura",
		"Lisa", "Sarah", "Johanna", "Clara", "Emilia", "Leonie", "Amelie", "Julia", "Paula", "Charlotte",
	},
	Male: []string{
		"Max", "Paul", "Leon", "Jonas", "Tom", "Felix", "Lukas", "Noah", "Elias", "Ben",
		"Finn", "Luis", "Moritz", "David", "Jan", "Niklas", "Tim", "Julian", "Philipp", "Henry",
	},
	Surnames: []string{
		"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker", "Schulz", "Hoffmann",
		"Schäfer", "Koch", "Bauer", "Richter", "Klein", "Wolf", "Schröder", "Neumann", "Schwarz", "Zimmermann",
		"Braun", "Krüger", "Hofmann", "Hartmann", "Lange", "Schmitt", "Werner", "Krause", "Meier", "Lehmann",
	},
}

// DrawName draws a (first, last) name for a student of class.
//
// The class only scopes uniqueness. If the (first, last, class) triple is
// taken, the surname is redrawn up to MaxNameAttempts times; after that a
// random two-digit suffix is appended and the name is accepted as is.
// The used-name set spans the whole run, not a single class.
func (rc *RunContext) DrawName(class string) (first, last string) {
	firstNames := rc.names.Male
	if rc.rng.IntN(2) == 0 {
		firstNames = rc.names.Female
	}

	first = pick(rc.rng, firstNames)
	last = pick(rc.rng, rc.names.Surnames)

	for attempt := 0; attempt < MaxNameAttempts && rc.nameTaken(first, last, class); attempt++ {
		last = pick(rc.rng, rc.names.Surnames)
	}

	if rc.nameTaken(first, last, class) {
		last = fmt.Sprintf("%s%d", last, 10+rc.rng.IntN(90))
	}

	rc.usedNames[nameKey{first, last, class}] = struct{}{}
	return first, last
}

func (rc *RunContext) nameTaken(first, last, class string) bool {
	_, ok := rc.usedNames[nameKey{first, last, class}]
	return ok
}
