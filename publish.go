package freerank

import (
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
	"github.com/agentstation/freerank/pkg/report"
)

// PublishOptions controls where reports are written.
type PublishOptions struct {
	// MarkdownPath defaults to constants.DefaultReportFile.
	MarkdownPath string
	// HTMLPath defaults to constants.DefaultHTMLReportFile.
	HTMLPath string
	// Title overrides the report heading.
	Title string
	// SkipHTML writes only the Markdown report.
	SkipHTML bool
}

func (o PublishOptions) withDefaults() PublishOptions {
	if o.MarkdownPath == "" {
		o.MarkdownPath = constants.DefaultReportFile
	}
	if o.HTMLPath == "" {
		o.HTMLPath = constants.DefaultHTMLReportFile
	}
	return o
}

// Publish implements Freerank.
func (f *freerank) Publish(result *Result, opts PublishOptions) error {
	if result == nil {
		return errors.NewValidationError("result", nil, "cannot be nil")
	}
	opts = opts.withDefaults()

	render := report.RenderOptions{
		Title:       opts.Title,
		GeneratedAt: result.GeneratedAt,
	}
	if !opts.SkipHTML {
		render.HTMLLink = relativeLink(opts.MarkdownPath, opts.HTMLPath)
	}

	if err := writeFile(opts.MarkdownPath, func(w io.Writer) error {
		return report.WriteMarkdown(w, result.Table, render)
	}); err != nil {
		return err
	}
	f.config.logger.Info().Str("path", opts.MarkdownPath).Int("rows", len(result.Table.Rows)).Msg("Wrote Markdown report")

	if opts.SkipHTML {
		return nil
	}
	if err := writeFile(opts.HTMLPath, func(w io.Writer) error {
		return report.WriteHTML(w, result.Table, render)
	}); err != nil {
		return err
	}
	f.config.logger.Info().Str("path", opts.HTMLPath).Msg("Wrote HTML report")
	return nil
}

// relativeLink returns the HTML report's path as seen from the Markdown report.
func relativeLink(markdownPath, htmlPath string) string {
	rel, err := filepath.Rel(filepath.Dir(markdownPath), htmlPath)
	if err != nil {
		return filepath.Base(htmlPath)
	}
	return filepath.ToSlash(rel)
}

// writeFile renders into a temp file next to path and moves it into place.
func writeFile(path string, render func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	if err := render(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapResource("write", "report", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
