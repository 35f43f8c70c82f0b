package config

import (
	"os"
	"path/filepath"

	"github.com/tacogips/crossgen/internal/debug"
)

// Locations are the resolved, absolute directories a run works with.
type Locations struct {
	// BaseDir is the configuration file's directory.
	BaseDir     string
	ModelDir    string
	TemplateDir string
	OutputDir   string
}

// ResolveLocations resolves the configured directories against the
// directory of configPath. Model and template directories must exist; the
// output directory is created when missing.
func ResolveLocations(cfg *Config, configPath string) (*Locations, error) {
	abs, err := ExpandPath(configPath)
	if err != nil {
		return nil, &LocationError{Type: LocationMissing, Field: "configuration file", Path: configPath, Cause: err}
	}
	base := filepath.Dir(abs)

	loc := &Locations{BaseDir: base}
	if loc.ModelDir, err = inputDir(base, "modelFileLocation", cfg.ModelFileLocation); err != nil {
		return nil, err
	}
	if loc.TemplateDir, err = inputDir(base, "templateFileLocation", cfg.TemplateFileLocation); err != nil {
		return nil, err
	}
	if loc.OutputDir, err = outputDir(base, cfg.OutputFileLocation); err != nil {
		return nil, err
	}
	return loc, nil
}

func qualify(base, dir string) (string, error) {
	if dir == "" {
		return base, nil
	}
	if dir[0] == '~' || filepath.IsAbs(dir) {
		return ExpandPath(dir)
	}
	return filepath.Join(base, dir), nil
}

func inputDir(base, field, dir string) (string, error) {
	path, err := qualify(base, dir)
	if err != nil {
		return "", &LocationError{Type: LocationMissing, Field: field, Path: dir, Cause: err}
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", &LocationError{Type: LocationMissing, Field: field, Path: path, Cause: err}
	}
	if !info.IsDir() {
		return "", &LocationError{Type: LocationNotDirectory, Field: field, Path: path}
	}
	return path, nil
}

func outputDir(base, dir string) (string, error) {
	const field = "outputFileLocation"
	path, err := qualify(base, dir)
	if err != nil {
		return "", &LocationError{Type: LocationCreateFailed, Field: field, Path: dir, Cause: err}
	}
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return "", &LocationError{Type: LocationNotDirectory, Field: field, Path: path}
	case err == nil:
		return path, nil
	case !os.IsNotExist(err):
		return "", &LocationError{Type: LocationCreateFailed, Field: field, Path: path, Cause: err}
	}

	debug.Debug("[config] folder %s does not exist, creating it", path)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", &LocationError{Type: LocationCreateFailed, Field: field, Path: path, Cause: err}
	}
	return path, nil
}
