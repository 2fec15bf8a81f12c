package render

// Option configures a Writer.
type Option func(*Writer)

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(w *Writer) {
		if dir != "" {
			w.dir = dir
		}
	}
}

// WithHTMLFile sets the HTML table file name.
func WithHTMLFile(name string) Option {
	return func(w *Writer) {
		if name != "" {
			w.htmlFile = name
		}
	}
}

// WithJSONFile sets the JSON payload file name.
func WithJSONFile(name string) Option {
	return func(w *Writer) {
		if name != "" {
			w.jsonFile = name
		}
	}
}

// WithJSFile sets the script payload file name.
func WithJSFile(name string) Option {
	return func(w *Writer) {
		if name != "" {
			w.jsFile = name
		}
	}
}

// WithVariable sets the global the script file assigns the payload to.
func WithVariable(v string) Option {
	return func(w *Writer) {
		if v != "" {
			w.variable = v
		}
	}
}

// WithCutoff sets the rank after which the cutoff line is drawn.
// Zero disables it.
func WithCutoff(n int) Option {
	return func(w *Writer) {
		if n >= 0 {
			w.cutoff = n
		}
	}
}
