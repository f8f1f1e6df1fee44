package rules

// Category identifies which kind of file a PatternSet targets.
type Category int

const (
	// CategoryStructural covers structural-reference files: content encoding
	// fully qualified namespace paths the runtime uses to locate code.
	CategoryStructural Category = iota

	// CategoryMarkup covers declarative-markup files: components,
	// permissions and resources declared by namespace-qualified name.
	CategoryMarkup
)

// Categories returns all categories in processing order. Structural files
// are fully drained before markup files begin.
func Categories() []Category {
	return []Category{CategoryStructural, CategoryMarkup}
}

func (c Category) String() string {
	switch c {
	case CategoryStructural:
		return "smali"
	case CategoryMarkup:
		return "xml"
	default:
		return "unknown"
	}
}

// Glob returns the doublestar pattern matching the category's files,
// relative to the job root.
func (c Category) Glob() string {
	switch c {
	case CategoryStructural:
		return "**/*.smali"
	case CategoryMarkup:
		return "**/*.xml"
	default:
		return ""
	}
}
