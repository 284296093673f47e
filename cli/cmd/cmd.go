package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Streams are the standard input and output of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type streamsKey struct{}

// WithStreams returns a new context.Context whose commands read from and
// write to s. Nil members fall back to the process's standard streams.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// Clock reports the current Unix time in seconds.
type Clock func() int64

// SystemClock reads the wall clock.
func SystemClock() int64 { return time.Now().Unix() }

// FixedClock always reports unix.
func FixedClock(unix int64) Clock { return func() int64 { return unix } }

type clockKey struct{}

// WithClock returns a new context.Context whose commands evaluate "now" with
// clock.
func WithClock(ctx context.Context, clock Clock) context.Context {
	return context.WithValue(ctx, clockKey{}, clock)
}

func clockFrom(ctx context.Context) Clock {
	if c, ok := ctx.Value(clockKey{}).(Clock); ok && c != nil {
		return c
	}

	return SystemClock
}

type (
	sourceFilesKey struct{}
	sourceFiles    struct {
		read  []io.Reader
		stdin io.Reader
		multi io.Reader
	}

	// SourceFiles reads the documents named with --source.
	SourceFiles interface {
		IsZero() bool
		// Document returns the sources joined line-wise: each source
		// contributes its lines in order, without merging the last line of
		// one source with the first line of the next.
		Document() (string, error)
		io.Reader
		io.Closer
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.read) == 0 && s.stdin == nil }

func (s *sourceFiles) readers() []io.Reader {
	if s.stdin != nil {
		return append(s.read[:len(s.read):len(s.read)], s.stdin)
	}

	return s.read
}

// Read implements io.Reader by reading from all source files in order,
// including stdin if present.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	if s.multi == nil {
		s.multi = io.MultiReader(s.readers()...)
	}

	return s.multi.Read(p)
}

func (s *sourceFiles) Document() (string, error) {
	var b strings.Builder

	for i, r := range s.readers() {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}

		if i > 0 {
			b.WriteByte('\n')
		}

		text := strings.ReplaceAll(string(data), "\r\n", "\n")
		b.WriteString(strings.TrimSuffix(text, "\n"))
	}

	return b.String(), nil
}

// Close closes every opened source file. Stdin is left open.
func (s *sourceFiles) Close() error {
	var errs []error

	for _, r := range s.read {
		if c, ok := r.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing the given source
// files.
//
// Readers are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single reader of the
// input stream installed by [WithStreams], placed last so it reads after all
// regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(
		ctx,
		sourceFilesKey{},
		buildSourceFiles(sources, streamsFrom(ctx).In),
	)
}

func buildSourceFiles(sources []string, stdin io.Reader) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.read = make([]io.Reader, 0, len(sources))
	seen := make(map[fileKey]struct{})

	// A named path to the same file as stdin counts as "-".
	stdinKey, stdinIsFile := fileKey{}, false
	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			stdinKey, stdinIsFile = makeFileKey(info)
		}
	}

	hasStdin := false

	for _, src := range sources {
		if src == stdinSource {
			hasStdin = true

			continue
		}

		reader, key, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		if stdinIsFile && key == stdinKey {
			hasStdin = true

			reader.Close()

			continue
		}

		srcs.read = append(srcs.read, reader)
	}

	if hasStdin {
		srcs.stdin = stdin
	}

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// Returns false if the file is a duplicate or cannot be opened.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (*os.File, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return nil, fileKey{}, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, fileKey{}, false
	}

	if _, exists := seen[key]; exists {
		return nil, fileKey{}, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fileKey{}, false
	}

	return file, key, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// sourceFilesFrom retrieves the sources stored in ctx by WithSourceFiles.
// Returns nil if none were stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}
