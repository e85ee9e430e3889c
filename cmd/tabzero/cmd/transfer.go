package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/exporter"
	"github.com/nikbrunner/tabzero/internal/importer"
	"github.com/nikbrunner/tabzero/internal/model"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all bookmarks with an import",
		Long: `Import reads a browser bookmarks export (.html), a tabzero JSON
export (.json) or a homepage bookmarks file (.yaml) and replaces
every bookmark and category with its contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			snap, err := parseImport(args[0], f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			a.bookmarks.ReplaceAll(snap)
			success(cmd.OutOrStdout(), "Imported %d bookmark(s) in %d categor%s",
				len(snap.Bookmarks), len(snap.Categories), pluralY(len(snap.Categories)))
			return nil
		},
	}
}

func parseImport(path string, r io.Reader) (model.Snapshot, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return importer.ParseHTML(r)
	case ".json":
		return importer.ParseJSON(r)
	case ".yaml", ".yml":
		return importer.ParseHomepageYAML(r)
	default:
		return model.Snapshot{}, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export bookmarks as HTML or JSON",
		Long: `Export writes every bookmark and category to path, or to
~/Downloads/tabzero-export-<date>.<format> when no path is given.
A path of "-" writes to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			snap := a.bookmarks.Snapshot()

			var buf bytes.Buffer
			switch format {
			case "html":
				buf.WriteString(exporter.ExportHTML(snap))
			case "json":
				if err := exporter.ExportJSON(&buf, snap); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q: want html or json", format)
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if path == "" {
				p, err := exporter.DefaultExportPath(format)
				if err != nil {
					return err
				}
				path = p
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Exported %d bookmark(s) to %s", len(snap.Bookmarks), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "html or json")
	return cmd
}
