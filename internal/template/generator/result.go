package generator

// Failure is one recorded problem within a binding.
type Failure struct {
	Kind FailureKind
	// Match is the concrete path of the match involved, if any.
	Match string
	// Template is the template file involved, if any.
	Template string
	Err      error
}

// BindingResult summarizes the processing of one model-template binding.
type BindingResult struct {
	// Index is the binding's position in the configuration.
	Index      int
	ModelFile  string
	Expression string

	// Matches is the number of nodes the path expression selected.
	Matches int
	// Objects is the number of objects the matches expanded into.
	Objects int
	// Files lists the output files written, in generation order.
	Files []string
	// Failures lists the failures met while processing the binding. When
	// the run was aborted, the fatal failure is the last entry.
	Failures []Failure
	// Skipped is set when the whole binding was abandoned.
	Skipped bool
}

// Succeeded reports whether the binding completed without failures.
func (r BindingResult) Succeeded() bool {
	return !r.Skipped && len(r.Failures) == 0
}

// RunResult aggregates the results of all processed bindings.
type RunResult struct {
	Bindings []BindingResult
}

// Files returns every output file written, in generation order.
func (r *RunResult) Files() []string {
	var files []string
	for _, b := range r.Bindings {
		files = append(files, b.Files...)
	}
	return files
}

// Failures returns every recorded failure across bindings.
func (r *RunResult) Failures() []Failure {
	var out []Failure
	for _, b := range r.Bindings {
		out = append(out, b.Failures...)
	}
	return out
}

// SkippedBindings returns the number of bindings that were abandoned.
func (r *RunResult) SkippedBindings() int {
	n := 0
	for _, b := range r.Bindings {
		if b.Skipped {
			n++
		}
	}
	return n
}
