package generator

import (
	"bytes"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/k14s/difflib"
)

// Writer persists rendered output.
type Writer interface {
	// WriteFile writes content to name, relative to the output directory.
	WriteFile(name string, content []byte) error
}

// FileWriter implements Writer on a filesystem rooted at the output
// directory. Content goes to a temporary sibling first and is renamed into
// place, so an existing file is either fully replaced or left untouched.
// Missing parent directories are an error, not created.
type FileWriter struct {
	fs billy.Filesystem
}

// NewFileWriter creates a new FileWriter.
func NewFileWriter(fs billy.Filesystem) *FileWriter {
	return &FileWriter{fs: fs}
}

// WriteFile implements Writer.
func (w *FileWriter) WriteFile(name string, content []byte) error {
	if err := checkParent(w.fs, name); err != nil {
		return err
	}

	slashed := filepath.ToSlash(name)
	tmp := path.Join(path.Dir(slashed), "."+path.Base(slashed)+".tmp")

	f, err := w.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to create temporary file", name, err)
	}
	_, err = f.Write(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = w.fs.Remove(tmp)
		return newGeneratorError(GeneratorWriteFailed, "failed to write file content", name, err)
	}

	if err := w.fs.Rename(tmp, name); err != nil {
		_ = w.fs.Remove(tmp)
		return newGeneratorError(GeneratorWriteFailed, "failed to replace file", name, err)
	}
	return nil
}

func checkParent(fs billy.Filesystem, name string) error {
	dir := path.Dir(filepath.ToSlash(name))
	if dir == "." || dir == "" {
		return nil
	}
	info, err := fs.Stat(dir)
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed,
			"output subdirectory "+dir+" does not exist",
			name,
			err)
	}
	if !info.IsDir() {
		return newGeneratorError(GeneratorWriteFailed,
			dir+" is not a directory",
			name,
			nil)
	}
	return nil
}

// PlannedFile describes a file a dry run would have written.
type PlannedFile struct {
	// Name is the output file name.
	Name string
	// Size is the rendered content size in bytes.
	Size int
	// Exists indicates the file is already present and would be overwritten.
	Exists bool
}

// DryRunWriter records what would be written without touching the output.
type DryRunWriter struct {
	fs    billy.Filesystem
	Files []PlannedFile
}

// NewDryRunWriter creates a DryRunWriter that inspects fs for existing files.
func NewDryRunWriter(fs billy.Filesystem) *DryRunWriter {
	return &DryRunWriter{fs: fs}
}

// WriteFile implements Writer.
func (w *DryRunWriter) WriteFile(name string, content []byte) error {
	if err := checkParent(w.fs, name); err != nil {
		return err
	}
	_, err := w.fs.Stat(name)
	w.Files = append(w.Files, PlannedFile{Name: name, Size: len(content), Exists: err == nil})
	return nil
}

// FileDiff is the difference between a generated file and what is on disk.
type FileDiff struct {
	// Name is the output file name.
	Name string
	// New indicates the file does not exist yet.
	New bool
	// Diff is a line diff from the current to the generated content.
	Diff string
}

// DiffWriter compares generated output with the existing files instead of
// writing it.
type DiffWriter struct {
	fs    billy.Filesystem
	Diffs []FileDiff
}

// NewDiffWriter creates a DiffWriter comparing against fs.
func NewDiffWriter(fs billy.Filesystem) *DiffWriter {
	return &DiffWriter{fs: fs}
}

// WriteFile implements Writer.
func (w *DiffWriter) WriteFile(name string, content []byte) error {
	current, err := util.ReadFile(w.fs, name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return newGeneratorError(GeneratorWriteFailed, "failed to read existing file", name, err)
		}
		w.Diffs = append(w.Diffs, FileDiff{
			Name: name,
			New:  true,
			Diff: difflib.PPDiff(nil, strings.Split(string(content), "\n")),
		})
		return nil
	}
	if bytes.Equal(current, content) {
		return nil
	}
	w.Diffs = append(w.Diffs, FileDiff{
		Name: name,
		Diff: difflib.PPDiff(strings.Split(string(current), "\n"), strings.Split(string(content), "\n")),
	})
	return nil
}

// Changed reports whether any generated file differs from the output directory.
func (w *DiffWriter) Changed() bool {
	return len(w.Diffs) > 0
}
