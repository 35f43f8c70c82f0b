package config

// Config is the generator configuration file.
type Config struct {
	// ModelFileLocation is the directory holding model files, relative to the
	// configuration file. Defaults to the configuration file's directory.
	ModelFileLocation string `yaml:"modelFileLocation" toml:"modelFileLocation"`
	// TemplateFileLocation is the directory holding templates.
	TemplateFileLocation string `yaml:"templateFileLocation" toml:"templateFileLocation"`
	// OutputFileLocation is the directory generated files are written to.
	// It is created when missing.
	OutputFileLocation string `yaml:"outputFileLocation" toml:"outputFileLocation"`
	// ErrorPolicy selects how failures are handled: default, strict or lenient.
	ErrorPolicy string `yaml:"errorPolicy" toml:"errorPolicy"`
	// ModelTemplateBindings are processed in order.
	ModelTemplateBindings []ModelTemplateBinding `yaml:"modelTemplateBindings" toml:"modelTemplateBindings"`
}

// ModelTemplateBinding pairs a model document and path expression with the
// templates rendered for every match.
type ModelTemplateBinding struct {
	// ModelFile is the model document, relative to the model location.
	ModelFile string `yaml:"modelFile" toml:"modelFile"`
	// ModelYAMLPath is the path expression selecting nodes of the model.
	ModelYAMLPath string `yaml:"modelYAMLPath" toml:"modelYAMLPath"`
	// MustExist makes an empty match a failure. Defaults to true.
	MustExist *bool `yaml:"mustExist,omitempty" toml:"mustExist,omitempty"`
	// TemplateBindings are applied to every matched object, in order.
	TemplateBindings []TemplateBinding `yaml:"templateBindings" toml:"templateBindings"`
}

// RequireMatch reports whether the path expression must match at least one node.
func (b ModelTemplateBinding) RequireMatch() bool {
	return b.MustExist == nil || *b.MustExist
}

// TemplateBinding names a template and the output file name pattern used
// for every object it is rendered for.
type TemplateBinding struct {
	// TemplateFile is the template, relative to the template location.
	TemplateFile string `yaml:"templateFile" toml:"templateFile"`
	// OutputFileName may contain the {{name}} placeholder.
	OutputFileName string `yaml:"outputFileName" toml:"outputFileName"`
}
