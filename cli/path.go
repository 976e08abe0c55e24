package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/mdt/pkg"
)

// baseConfig is the base name of the configuration file and the top-level
// key holding flag values inside it.
const baseConfig = "config"

// baseHistory is the file name of the REPL history in the cache directory.
const baseHistory = "history.utf8"

var defaultDirMode os.FileMode = 0o700

// prefixRules rewrite the executable name into the directory prefix.
var prefixRules = []struct {
	rex *regexp.Regexp
	rep string
}{
	{regexp.MustCompile(`^__debug_bin\d+$`), pkg.Name}, // dlv default output
	{regexp.MustCompile(`^\.+`), ""},
}

// basePrefix returns the name used for the configuration and cache
// directories. It is the base name of the executable without extension,
// rewritten by prefixRules.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		for _, rule := range prefixRules {
			id = rule.rex.ReplaceAllString(id, rule.rep)
		}

		if id == "" {
			id = pkg.Name
		}

		return id
	},
)

// userDir joins basePrefix to the directory returned by primary. If primary
// fails, the directory falls back to $HOME/<home>, then to the working
// directory.
func userDir(primary func() (string, error), home string) string {
	dir, err := primary()
	if err != nil {
		if dir, err = os.UserHomeDir(); err == nil {
			dir = filepath.Join(dir, home)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, basePrefix())
}

var configDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

var cacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// configPath joins elem onto the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// cachePath joins elem onto the cache directory.
func cachePath(elem ...string) string {
	return filepath.Join(append([]string{cacheDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
