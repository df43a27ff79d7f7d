package summarizer

import (
	"fmt"
	"strings"

	"github.com/user/framescope/pkg/timefmt"
)

// Translator maps an English label to the output language.
type Translator func(key string) string

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	t       Translator
	version string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.t = t
	}
}

// WithVersion adds a generator version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a formatter. Labels are English unless a
// translator is given.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		t: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.t
	na := t("N/A")

	fmt.Fprintf(&b, "# %s\n\n", t("Video Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("File"))
	f.header(&b)
	f.row(&b, "File Name", orNA(s.File.Name, na))
	f.row(&b, "Path", orNA(s.File.Path, na))
	f.row(&b, "Format", orNA(s.File.Format, na))
	f.row(&b, "File Size", formatBytes(s.File.Size))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Stream"))
	f.header(&b)
	f.row(&b, "Backend", orNA(s.Stream.Backend, na))
	f.row(&b, "Codec", orNA(s.Stream.Codec, na))
	if s.Stream.Width > 0 && s.Stream.Height > 0 {
		f.row(&b, "Resolution", fmt.Sprintf("%dx%d", s.Stream.Width, s.Stream.Height))
	} else {
		f.row(&b, "Resolution", na)
	}
	if s.Stream.FPS > 0 {
		f.row(&b, "Frame Rate", fmt.Sprintf("%.2f fps", s.Stream.FPS))
	} else {
		f.row(&b, "Frame Rate", na)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Frames"))
	f.header(&b)
	f.row(&b, "Frame Count Mode", orNA(string(s.Frames.Mode), na))
	f.row(&b, "Total Frames", countOrNA(s.Frames.Total, na))
	f.row(&b, "Container Frames", countOrNA(s.Frames.ContainerFrames, na))
	f.row(&b, "Decoder Frames", countOrNA(s.Frames.DecoderFrames, na))
	if s.Stream.FPS > 0 && s.Frames.Total > 0 {
		f.row(&b, "Duration", timefmt.Duration(s.Frames.Total, s.Stream.FPS))
	} else {
		f.row(&b, "Duration", na)
	}
	if s.Frames.ContainerFrames > 0 && s.Frames.DecoderFrames > 0 && s.Frames.ContainerFrames != s.Frames.DecoderFrames {
		fmt.Fprintf(&b, "\n> %s: %d\n", t("Frame count sources disagree by"), abs(s.Frames.ContainerFrames-s.Frames.DecoderFrames))
	}
	b.WriteString("\n---\n\n")

	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if f.version != "" {
		footer += fmt.Sprintf(" (framescope %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func (f *MarkdownFormatter) header(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n", f.t("Item"), f.t("Value"))
	b.WriteString("|------|-------|\n")
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", f.t(label), value)
}

func orNA(s, na string) string {
	if s == "" {
		return na
	}
	return s
}

func countOrNA(n int, na string) string {
	if n <= 0 {
		return na
	}
	return fmt.Sprintf("%d", n)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// formatBytes renders a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
