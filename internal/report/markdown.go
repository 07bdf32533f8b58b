package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"trackplume/domain/comparison"
	"trackplume/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const reportTitle = "Track vs Plume Comparison"

// Document is the content of an exported comparison report
type Document struct {
	RunID      string
	Source     string
	Records    []comparison.ComparisonRecord
	Skipped    []string
	ChartPaths []string
}

// Markdown renders the document as GitHub-style markdown
func Markdown(doc Document) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	if doc.Source != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", doc.Source)
	}
	if doc.RunID != "" {
		fmt.Fprintf(&b, "Run: `%s`\n\n", doc.RunID)
	}

	b.WriteString("## Results\n\n")
	if len(doc.Records) == 0 {
		b.WriteString("No metric had both Track and Plume F-values.\n\n")
	} else {
		b.WriteString("| Metric | Track F | Track p | Plume F | Plume p | F Difference | Track Significant | Plume Significant |\n")
		b.WriteString("|---|---:|---:|---:|---:|---:|---|---|\n")
		for _, r := range doc.Records {
			fmt.Fprintf(&b, "| %s | %.4f | %.6f | %.4f | %.6f | %.4f | %s | %s |\n",
				escapeCell(r.Metric), r.TrackF, r.TrackP, r.PlumeF, r.PlumeP, r.FDifference,
				comparison.YesNo(r.TrackSignificant), comparison.YesNo(r.PlumeSignificant))
		}
		b.WriteString("\n")
	}

	if len(doc.Skipped) > 0 {
		b.WriteString("## Skipped\n\n")
		for _, name := range doc.Skipped {
			fmt.Fprintf(&b, "- %s (missing F-value)\n", name)
		}
		b.WriteString("\n")
	}

	if len(doc.ChartPaths) > 0 {
		b.WriteString("## Charts\n\n")
		for _, p := range doc.ChartPaths {
			name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
			fmt.Fprintf(&b, "![%s](%s)\n\n", name, filepath.ToSlash(p))
		}
	}

	b.WriteString("p-values < 0.05 indicate statistically significant differences between sites.\n")
	return b.Bytes()
}

// HTML renders the document as a complete HTML page
func HTML(doc Document) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: reportTitle,
	})
	return markdown.Render(p.Parse(Markdown(doc)), renderer)
}

// WriteFile writes doc to path, as HTML when the extension is .html or .htm and
// as markdown otherwise. Chart paths are made relative to the report's directory.
func WriteFile(path string, doc Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IOFailure(dir, err)
	}

	rel := make([]string, len(doc.ChartPaths))
	for i, p := range doc.ChartPaths {
		rel[i] = relativeTo(dir, p)
	}
	doc.ChartPaths = rel

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		data = HTML(doc)
	default:
		data = Markdown(doc)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IOFailure(path, err)
	}
	return nil
}

func relativeTo(dir, p string) string {
	absDir, err1 := filepath.Abs(dir)
	absP, err2 := filepath.Abs(p)
	if err1 != nil || err2 != nil {
		return p
	}
	if r, err := filepath.Rel(absDir, absP); err == nil {
		return r
	}
	return p
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
