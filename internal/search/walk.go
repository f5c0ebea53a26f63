package search

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// resolvePaths expands the positional arguments into a flat list of
// regular files to scan. A directory argument is only accepted when
// Recursive is set, matching the restored -r flag; otherwise it is
// reported as an IOError and skipped, same as an unreadable file.
func resolvePaths(opts Options, paths []string) ([]string, []error) {
	var files []string
	var ioErrs []error

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			ioErrs = append(ioErrs, errors.Wrapf(err, "stat %s", p))
			continue
		}

		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		if !opts.Recursive {
			ioErrs = append(ioErrs, errors.Errorf("%s is a directory (use -r to recurse)", p))
			continue
		}

		walkErr := filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				ioErrs = append(ioErrs, errors.Wrapf(err, "walk %s", path))
				return nil
			}
			if fi.IsDir() {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if walkErr != nil {
			ioErrs = append(ioErrs, errors.Wrapf(walkErr, "walk %s", p))
		}
	}

	return files, ioErrs
}
