package sqlite

import (
	"os"
	"path/filepath"
)

// DefaultFileName is the database created in the user directory when no
// path is configured.
const DefaultFileName = "reminders.db"

// ResolvePath picks the database file for the sqlite driver: the override
// when set, otherwise the first existing candidate in userDir, otherwise
// userDir/reminders.db.
func ResolvePath(userDir, override string) string {
	if override != "" {
		return override
	}

	for _, candidate := range candidates(userDir) {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(userDir, DefaultFileName)
}

func candidates(userDir string) []string {
	return []string{
		filepath.Join(userDir, DefaultFileName),
		filepath.Join(userDir, "reminders.sqlite"),
		filepath.Join(userDir, "neno.db"),
	}
}
