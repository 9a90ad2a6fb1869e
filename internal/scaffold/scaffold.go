// Package scaffold extracts project templates into a target directory.
package scaffold

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pgzip "github.com/klauspost/pgzip"
)

// Progress is called once per extracted file. It may be nil.
type Progress func(name string)

// ExtractTemplate unpacks a gzipped template tarball into dest.
// A single leading directory component in archive paths is stripped, so a
// tarball rooted at "template-name/" lands directly in dest.
// Paths escaping dest are rejected.
func ExtractTemplate(r io.Reader, dest string, progress Progress) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	gz, err := pgzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read template archive: %w", err)
		}

		name := stripLeadingDir(hdr.Name)
		if name == "" {
			continue
		}

		target, err := secureJoin(dest, name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", name, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode()); err != nil {
				return fmt.Errorf("failed to extract %s: %w", name, err)
			}
			if progress != nil {
				progress(name)
			}
		default:
			// Symlinks and other special entries are not part of templates.
			continue
		}
	}
}

// CountFiles returns the number of regular files in a gzipped tarball.
// Used to size the extraction progress bar when the archive is on disk.
func CountFiles(r io.Reader) (int, error) {
	gz, err := pgzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	count := 0
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read template archive: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && stripLeadingDir(hdr.Name) != "" {
			count++
		}
	}
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// stripLeadingDir removes the first path component from an archive path.
func stripLeadingDir(name string) string {
	name = strings.TrimPrefix(name, "./")
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return ""
}

// secureJoin joins dest and name, rejecting paths that escape dest.
func secureJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("template entry %q escapes destination", name)
	}
	return target, nil
}
