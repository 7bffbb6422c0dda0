package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openReport(t *testing.T) *Report {
	t.Helper()
	r, err := (&ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	return r
}

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	res := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		res[f.Name] = string(data)
	}
	return res
}

func TestReport_StoreAndClose(t *testing.T) {
	r := openReport(t)

	src := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(src, []byte("<p>hello</p>"), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("input/page.html", src)
	r.StoreData("transcript-2.txt", []byte("second"))
	r.StoreData("transcript-10.txt", []byte("tenth"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	files := readArchive(t, r.Name())
	if files["input/page.html"] != "<p>hello</p>" {
		t.Errorf("stored file = %q", files["input/page.html"])
	}
	if files["transcript-10.txt"] != "tenth" {
		t.Errorf("stored data = %q", files["transcript-10.txt"])
	}

	manifest := files["MANIFEST"]
	two, ten := strings.Index(manifest, "transcript-2.txt"), strings.Index(manifest, "transcript-10.txt")
	if two < 0 || ten < 0 || two > ten {
		t.Errorf("manifest is not in natural order:\n%s", manifest)
	}
}

func TestReport_StoreDataVersionsNames(t *testing.T) {
	r := openReport(t)
	r.StoreData("transcript.txt", []byte("one"))
	r.StoreData("transcript.txt", []byte("two"))
	if len(r.entries) != 2 {
		t.Errorf("entries = %d, want 2", len(r.entries))
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

func TestReport_StoreCopyRemovesScratch(t *testing.T) {
	r := openReport(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.css"), []byte("p{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("styles", dir); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	if len(r.scratch) != 1 {
		t.Fatalf("scratch = %v, want one copy", r.scratch)
	}
	scratch := r.scratch[0]

	// changes after the copy do not reach the report
	if err := os.WriteFile(filepath.Join(dir, "a.css"), []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		os.RemoveAll(scratch)
		t.Errorf("expected scratch copy to be removed")
	}
	// original is never touched
	if _, err := os.Stat(filepath.Join(dir, "a.css")); err != nil {
		t.Errorf("stored original should not be removed: %v", err)
	}
	if got := readArchive(t, r.Name())["styles/a.css"]; got != "p{}" {
		t.Errorf("copied file = %q, want snapshot", got)
	}
}

func TestReport_StoreCopyMissing(t *testing.T) {
	r := openReport(t)
	defer r.Close()
	if err := r.StoreCopy("missing", filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	r.Store("x", "y")
	r.StoreData("x", nil)
	if r.Name() != "" {
		t.Error("nil report must not have name")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
