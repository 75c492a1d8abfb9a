package dotdir

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"runtime"
)

const (
	usersDir = "users"

	// RemindersFile is the per-user reminder list.
	RemindersFile = "reminders.json"

	// HistoryFile is the per-user conversation transcript.
	HistoryFile = "conversation_history.json"

	// KnowledgeFile is the shared knowledge base.
	KnowledgeFile = "knowledge_base.json"
)

// usernameEnv is checked in order before asking the operating system.
var usernameEnv = []string{
	"NENO_USER",
	"ASSISTANT_USER",
	"SUDO_USER",
	"USERNAME",
	"USER",
	"LOGNAME",
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeUsername replaces every character that is not safe in a directory
// name with an underscore.
func SanitizeUsername(raw string) string {
	s := unsafeChars.ReplaceAllString(raw, "_")
	if s == "" {
		return "default"
	}
	return s
}

// UserSlug returns the sanitized name of the current operating system account.
func UserSlug() string {
	return SanitizeUsername(detectUsername())
}

func detectUsername() string {
	for _, key := range usernameEnv {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}

	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}

	if home, err := os.UserHomeDir(); err == nil {
		if base := filepath.Base(home); base != "" && base != "." && base != string(filepath.Separator) {
			return base
		}
	}

	return "default_" + runtime.GOOS
}

// UserDir returns target/users/<slug>, creating it when missing.
func UserDir(target, slug string) (string, error) {
	if slug == "" {
		slug = UserSlug()
	}
	dir := filepath.Join(target, usersDir, SanitizeUsername(slug))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating user directory %s: %w", dir, err)
	}
	return dir, nil
}

// UserFile returns the path of name inside the user directory. When the file
// does not exist yet and a shared file with the same name exists directly in
// target, the shared file is copied over so data kept before per-user
// directories existed is not lost.
func UserFile(target, slug, name string) (string, error) {
	dir, err := UserDir(target, slug)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	legacy := filepath.Join(target, name)
	if info, err := os.Stat(legacy); err == nil && !info.IsDir() {
		if err := copyFile(legacy, path); err != nil {
			return path, fmt.Errorf("migrating %s to %s: %w", legacy, path, err)
		}
	}

	return path, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// A partial copy would otherwise be kept by the O_EXCL check above.
		return errors.Join(err, os.Remove(dst))
	}
	return nil
}
