package config

import (
	"fmt"
	"strings"
)

// Validate validates a configuration that did not come from a file.
func Validate(config *Config) error {
	return NewLoader().Validate(config)
}

func validate(file string, cfg *Config) error {
	if cfg == nil {
		return NewConfigError(ConfigValidationFailed, file, "configuration cannot be nil")
	}
	if cfg.ModelTemplateBindings == nil {
		return NewConfigErrorWithField(ConfigValidationFailed, file, "modelTemplateBindings", "modelTemplateBindings is required")
	}

	for i, b := range cfg.ModelTemplateBindings {
		field := fmt.Sprintf("modelTemplateBindings[%d]", i)
		if strings.TrimSpace(b.ModelFile) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, file, field+".modelFile", "model file is required")
		}
		if strings.TrimSpace(b.ModelYAMLPath) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, file, field+".modelYAMLPath",
				"path expression is required (use \"/\" to select the whole document)")
		}
		if len(b.TemplateBindings) == 0 {
			return NewConfigErrorWithField(ConfigValidationFailed, file, field+".templateBindings", "at least one template binding is required")
		}
		for j, tb := range b.TemplateBindings {
			tfield := fmt.Sprintf("%s.templateBindings[%d]", field, j)
			if strings.TrimSpace(tb.TemplateFile) == "" {
				return NewConfigErrorWithField(ConfigValidationFailed, file, tfield+".templateFile", "template file is required")
			}
			if strings.TrimSpace(tb.OutputFileName) == "" {
				return NewConfigErrorWithField(ConfigValidationFailed, file, tfield+".outputFileName", "output file name is required")
			}
		}
	}
	return nil
}
