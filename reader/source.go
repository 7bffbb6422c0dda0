package reader

import (
	"archive/zip"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"axnav/archive"
)

// Page is one navigable document found at source path.
type Page struct {
	// Name is path relative to source root (inside archive for packed
	// pages), used for markup detection and resolving references.
	Name string
	// Archive is set for packed pages.
	Archive string
	// Title is Name decoded from forced code page, empty when the same.
	Title string

	dir string
}

// String returns human readable location.
func (p Page) String() string {
	name := p.Name
	if p.Title != "" {
		name = p.Title
	}
	if p.Archive != "" {
		return p.Archive + "/" + name
	}
	return filepath.Join(p.dir, filepath.FromSlash(name))
}

// Read returns page content.
func (p Page) Read() ([]byte, error) {
	if p.Archive != "" {
		return archive.ReadFile(p.Archive, p.Name)
	}
	return os.ReadFile(filepath.Join(p.dir, filepath.FromSlash(p.Name)))
}

// Resource reads file referenced by page, name is already resolved relative
// to page location.
func (p Page) Resource(name string) ([]byte, error) {
	if p.Archive != "" {
		return archive.ReadFile(p.Archive, name)
	}
	clean := path.Clean(name)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return nil, fmt.Errorf("resource outside of source directory: %s", name)
	}
	return os.ReadFile(filepath.Join(p.dir, filepath.FromSlash(clean)))
}

func sortPages(pages []Page) {
	slices.SortStableFunc(pages, func(a, b Page) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})
}

// codePage resolves IANA name of encoding forced for non UTF-8 names in
// archives.
func codePage(name string, log *zap.Logger) encoding.Encoding {
	if len(name) == 0 {
		return nil
	}
	cp, err := ianaindex.IANA.Encoding(name)
	if err != nil || cp == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", name), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(cp)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
	return cp
}

// Resolve finds pages at src which may be a file, a directory, an archive
// or a path inside an archive ("book.epub/OEBPS/text").
func Resolve(ctx context.Context, src string, cp encoding.Encoding, log *zap.Logger) ([]Page, error) {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return dirPages(ctx, head, log)
		}

		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		packed, err := archive.IsArchive(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if packed {
			inner := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			return archivePages(ctx, head, filepath.ToSlash(inner), cp, log)
		}
		if len(tail) != 0 {
			return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		return []Page{{Name: filepath.Base(head), dir: filepath.Dir(head)}}, nil
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}

func dirPages(ctx context.Context, dir string, log *zap.Logger) ([]Page, error) {
	var pages []Page
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", p), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() || !archive.IsMarkup(p) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		pages = append(pages, Page{Name: filepath.ToSlash(rel), dir: dir})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		log.Debug("Nothing to read", zap.String("dir", dir))
	}
	sortPages(pages)
	return pages, nil
}

func archivePages(ctx context.Context, arc, inner string, cp encoding.Encoding, log *zap.Logger) ([]Page, error) {
	var pages []Page
	err := archive.Walk(arc, inner, func(_ string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := f.FileHeader.Name
		if !archive.IsMarkup(name) {
			return nil
		}
		page := Page{Name: name, Archive: arc}
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding, reading still uses raw name
			if n, err := cp.NewDecoder().String(name); err == nil {
				page.Title = n
			} else {
				log.Warn("Unable to convert archive name from specified encoding", zap.String("path", name), zap.Error(err))
			}
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read archive: %w", err)
	}
	if len(pages) == 0 {
		log.Debug("Nothing to read", zap.String("archive", arc), zap.String("path", inner))
	}
	sortPages(pages)
	return pages, nil
}
