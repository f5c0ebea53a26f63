// Package search drives line-oriented input (stdin, files, or a
// recursively walked directory) through the compiled pattern engine
// and formats the results, following the original's match_in_file /
// match_in_files split but generalized to the restored flag surface.
package search

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/grepx/grepx/internal/engine"
	"github.com/grepx/grepx/internal/logx"
	"github.com/grepx/grepx/internal/search/prefilter"
)

// errNoFilesReachable is returned when every positional argument
// failed to resolve to a readable file, matching spec.md §7's "does
// not abort the whole search unless no files remain" rule.
var errNoFilesReachable = errors.New("no files reachable")

// Result is the outcome of one Run invocation: whether at least one
// match was found (used for the exit-code mapping) and the IOErrors
// collected along the way, none of which are fatal unless they leave
// zero files reachable.
type Result struct {
	Matched bool
	IOErrs  []error
}

// Run compiles opts.Pattern and scans every resolved input, writing
// formatted output to out. log may be nil.
func Run(opts Options, out io.Writer, log *logx.Logger) (Result, error) {
	pattern := opts.Pattern
	if opts.IgnoreCase {
		pattern = string(foldASCII([]byte(pattern)))
	}

	portions, groupCount, err := engine.Compile(pattern)
	if err != nil {
		return Result{}, err
	}

	var sources []namedSource
	var res Result

	if len(opts.Paths) == 0 {
		sources = []namedSource{{path: "(stdin)", open: func() (io.ReadCloser, error) {
			return io.NopCloser(os.Stdin), nil
		}}}
	} else {
		files, ioErrs := resolvePaths(opts, opts.Paths)
		res.IOErrs = append(res.IOErrs, ioErrs...)
		if len(files) == 0 {
			return res, errNoFilesReachable
		}
		for _, f := range files {
			path := f
			sources = append(sources, namedSource{path: path, open: func() (io.ReadCloser, error) {
				return os.Open(path)
			}})
		}
	}

	multiFile := len(sources) > 1
	w := newWriter(out, opts)

	var mu sync.Mutex
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup

	for _, src := range sources {
		src := src
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			rc, err := src.open()
			if err != nil {
				mu.Lock()
				res.IOErrs = append(res.IOErrs, err)
				mu.Unlock()
				if log != nil {
					log.Warn("cannot open input", "path", src.path, "error", err.Error())
				}
				return
			}
			defer rc.Close()

			filt := prefilter.Build(portions)
			matched, count := scanSource(rc, src.path, multiFile, opts, portions, groupCount, filt, w, &mu, log)

			mu.Lock()
			if matched {
				res.Matched = true
			}
			if opts.FilesWithMatches && matched {
				w.printPath(src.path)
			}
			if opts.Count {
				w.printCount(src.path, count, multiFile)
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	return res, nil
}

type namedSource struct {
	path string
	open func() (io.ReadCloser, error)
}

// scanSource runs every line of r through the prefilter and engine,
// printing as it goes (unless the caller wants only a path or a
// count, in which case printing is deferred to the caller). It owns
// its own Store for the whole file, Reset between lines, preserving
// the per-attempt ownership rule even when Run fans out across
// goroutines.
func scanSource(
	r io.Reader,
	path string,
	multiFile bool,
	opts Options,
	portions []engine.Portion,
	groupCount int,
	filt *prefilter.Filter,
	w *writer,
	mu *sync.Mutex,
	log *logx.Logger,
) (matched bool, count int) {
	store := engine.NewStore(groupCount)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()

		searchLine := line
		if opts.IgnoreCase {
			searchLine = foldASCII(line)
		}

		isMatch := false
		if filt.MayMatch(searchLine) {
			isMatch = engine.Matches(searchLine, portions, store)
		}
		log.Debug("scanned line", "path", path, "line", lineNo, "match", isMatch)

		printThis := isMatch != opts.InvertMatch
		if !printThis {
			continue
		}

		matched = true
		count++

		if opts.FilesWithMatches {
			break
		}
		if opts.Count {
			continue
		}

		lineCopy := append([]byte(nil), line...)
		mu.Lock()
		w.printLine(lineResult{path: path, lineNumber: lineNo, text: lineCopy, multiFile: multiFile})
		mu.Unlock()
	}

	if err := scanner.Err(); err != nil && log != nil {
		log.Warn("error reading input", "path", path, "error", err.Error())
	}

	return matched, count
}
