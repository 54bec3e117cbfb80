// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-quote2pdf/internal/fileutil"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-quote2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-quote2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output file errors. It names the
// missing parent directory when that is the cause.
func ForOutputDirectory(outputPath string) string {
	dir := filepath.Dir(outputPath)
	if !fileutil.DirExists(dir) {
		return format("directory " + dir + " does not exist")
	}
	return format("check " + dir + " is writable")
}

// ForInputSyntax returns a hint for input documents that fail to parse.
func ForInputSyntax() string {
	return format("input must be a JSON object or YAML mapping of quotation fields")
}

// ForFonts returns a hint listing where the font pair is looked up.
func ForFonts(dirs []string, regular, bold string) string {
	if len(dirs) == 0 {
		return ""
	}
	return format("place " + regular + " and " + bold + " together in one of: " + strings.Join(dirs, ", "))
}

// ForLogo returns a hint listing where the logo is looked up.
func ForLogo(dirs []string, name string) string {
	if len(dirs) == 0 {
		return ""
	}
	return formatHints([]string{
		"place " + name + " in one of: " + strings.Join(dirs, ", "),
		"supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP",
	})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
