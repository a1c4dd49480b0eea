package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

// Name folds a player name for case-insensitive lookups.
func Name(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}
