package generator

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/tacogips/crossgen/internal/object"
)

// NamePlaceholder is the token replaced by the matched object's name in
// output file name patterns.
const NamePlaceholder = "{{name}}"

// Substitute replaces every occurrence of NamePlaceholder in pattern with
// the object's name attribute. A pattern without the placeholder is
// returned unchanged, even for objects without a name.
func Substitute(pattern string, obj *object.Object) (string, error) {
	if !strings.Contains(pattern, NamePlaceholder) {
		return pattern, nil
	}
	name, ok := obj.Name()
	if !ok {
		return "", &MissingAttributeError{Pattern: pattern, Attribute: object.NameAttribute}
	}
	return strings.ReplaceAll(pattern, NamePlaceholder, name), nil
}

// OutputFilename substitutes pattern and validates the result.
func OutputFilename(pattern string, obj *object.Object) (string, error) {
	name, err := Substitute(pattern, obj)
	if err != nil {
		return "", err
	}
	if err := ValidateFilename(name, pattern); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateFilename checks that a substituted file name stays inside the
// output directory.
func ValidateFilename(name, pattern string) error {
	if strings.TrimSpace(name) == "" {
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("output file name is empty after substitution (pattern: %q)", pattern), "", nil)
	}

	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("output file name is an absolute path (pattern: %q)", pattern), name, nil)
	}

	cleaned := path.Clean(filepath.ToSlash(name))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("output file name escapes the output directory (pattern: %q)", pattern), name, nil)
	}

	if cleaned == "." || strings.HasSuffix(name, "/") {
		return newGeneratorError(GeneratorPathError,
			fmt.Sprintf("output file name does not name a file (pattern: %q)", pattern), name, nil)
	}

	return nil
}
