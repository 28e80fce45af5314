package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

func component(render func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return render(w)
	})
}

func esc(v string) string {
	return html.EscapeString(v)
}

func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatSeconds renders a scan duration like "57.2s".
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "s"
}

func IsActivePath(activePath, target string) bool {
	activePath = strings.TrimSpace(activePath)
	target = strings.TrimSpace(target)
	if target == "/" {
		return activePath == "/"
	}
	return strings.HasPrefix(activePath, target)
}

func AriaCurrent(activePath, target string) string {
	if IsActivePath(activePath, target) {
		return "page"
	}
	return ""
}

// SeverityBadgeClass maps a severity label to its badge styling.
// Header pseudo-rows like "CRITICAL (2 issues)" match on their prefix.
func SeverityBadgeClass(severity string) string {
	upper := strings.ToUpper(strings.TrimSpace(severity))
	switch {
	case strings.HasPrefix(upper, "CRITICAL"):
		return "badge badge-critical"
	case strings.HasPrefix(upper, "HIGH"):
		return "badge badge-high"
	case strings.HasPrefix(upper, "MEDIUM"):
		return "badge badge-medium"
	case strings.HasPrefix(upper, "LOW"):
		return "badge badge-low"
	case strings.HasPrefix(upper, "INFO"):
		return "badge badge-info"
	default:
		return "badge badge-outline"
	}
}

func writeAll(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
