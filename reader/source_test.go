package reader_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"axnav/reader"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeZip(t *testing.T, name string, files map[string]string, order []string) {
	t.Helper()
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for _, n := range order {
		w, err := zw.Create(n)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(files[n])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func names(pages []reader.Page) []string {
	res := make([]string, 0, len(pages))
	for _, p := range pages {
		res = append(res, p.Name)
	}
	return res
}

func TestResolve_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b10.html"), "<p>ten</p>")
	writeFile(t, filepath.Join(dir, "b2.html"), "<p>two</p>")
	writeFile(t, filepath.Join(dir, "sub", "c.xhtml"), "<p>sub</p>")
	writeFile(t, filepath.Join(dir, "notes.txt"), "skip")
	log := zaptest.NewLogger(t)

	pages, err := reader.Resolve(context.Background(), dir, nil, log)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]string{"b2.html", "b10.html", "sub/c.xhtml"}, names(pages)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
	data, err := pages[2].Read()
	if err != nil || string(data) != "<p>sub</p>" {
		t.Errorf("Read() = %q, %v", data, err)
	}
	if got := pages[2].String(); got != filepath.Join(dir, "sub", "c.xhtml") {
		t.Errorf("String() = %q", got)
	}

	writeFile(t, filepath.Join(dir, "sub", "style.css"), "p {}")
	if data, err := pages[2].Resource("sub/style.css"); err != nil || string(data) != "p {}" {
		t.Errorf("Resource() = %q, %v", data, err)
	}
	if _, err := pages[2].Resource("../outside.css"); err == nil {
		t.Error("expected error for resource outside of source")
	}

	single, err := reader.Resolve(context.Background(), filepath.Join(dir, "b2.html"), nil, log)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]string{"b2.html"}, names(single)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}

	if _, err := reader.Resolve(context.Background(), filepath.Join(dir, "missing.html"), nil, log); err == nil {
		t.Error("expected error for missing source")
	}
	if _, err := reader.Resolve(context.Background(), filepath.Join(dir, "b2.html", "inner"), nil, log); err == nil {
		t.Error("expected error for path below plain file")
	}
}

func TestResolve_Archive(t *testing.T) {
	dir := t.TempDir()
	arc := filepath.Join(dir, "book.epub")
	files := map[string]string{
		"mimetype":            "application/epub+zip",
		"OEBPS/ch10.xhtml":    "<p>ten</p>",
		"OEBPS/ch2.xhtml":     "<p>two</p>",
		"OEBPS/css/style.css": "p {}",
		"extra/appendix.html": "<p>appendix</p>",
	}
	writeZip(t, arc, files, []string{"mimetype", "OEBPS/ch10.xhtml", "OEBPS/ch2.xhtml", "OEBPS/css/style.css", "extra/appendix.html"})
	log := zaptest.NewLogger(t)

	pages, err := reader.Resolve(context.Background(), arc, nil, log)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]string{"OEBPS/ch2.xhtml", "OEBPS/ch10.xhtml", "extra/appendix.html"}, names(pages)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
	if got := pages[0].String(); got != arc+"/OEBPS/ch2.xhtml" {
		t.Errorf("String() = %q", got)
	}
	if data, err := pages[0].Read(); err != nil || string(data) != "<p>two</p>" {
		t.Errorf("Read() = %q, %v", data, err)
	}
	if data, err := pages[0].Resource("OEBPS/text/../css/style.css"); err != nil || string(data) != "p {}" {
		t.Errorf("Resource() = %q, %v", data, err)
	}

	inner, err := reader.Resolve(context.Background(), filepath.Join(arc, "OEBPS"), nil, log)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if diff := cmp.Diff([]string{"OEBPS/ch2.xhtml", "OEBPS/ch10.xhtml"}, names(inner)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := reader.Resolve(ctx, t.TempDir(), nil, zaptest.NewLogger(t)); err == nil {
		t.Error("expected error for canceled context")
	}
}
