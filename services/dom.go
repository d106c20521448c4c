package services

// Element is one matched node on the live application page. String
// accessors swallow driver errors and return "" so callers can treat a
// detached node like an empty one; mutating calls return the error for
// per-field bookkeeping.
type Element interface {
	// Text returns the node's visible text content.
	Text() string
	// Value returns the node's value attribute (inputs, submit buttons).
	Value() string
	// Attribute returns an arbitrary attribute, "" when absent.
	Attribute(name string) string

	// SetValue sets the field value and is expected to be followed by
	// DispatchInput/DispatchChange so reactive page logic observes it.
	SetValue(value string) error
	// SetParagraph replaces the node's content with a single <p> holding
	// the given text. Used for contenteditable rich-text editors.
	SetParagraph(text string) error
	// SelectIndex sets selectedIndex on a select element.
	SelectIndex(index int) error
	// OptionCount returns the number of options of a select element.
	OptionCount() int
	// Check marks a checkbox as checked.
	Check() error

	DispatchInput() error
	DispatchChange() error

	// ScrollIntoView smooth-scrolls the node to the viewport center.
	ScrollIntoView() error
	// Click triggers the node's click handler from inside the page.
	Click() error
}

// Document is the query surface of the currently loaded page. The form
// filler and action locator operate only through this interface so they
// can run against a fake document in tests.
type Document interface {
	// FindAll returns every element matching the CSS selector, in
	// document order. An empty result is not an error.
	FindAll(selector string) []Element
	// First returns the first match, or ok=false when nothing matches.
	First(selector string) (Element, bool)
	// BodyText returns the page's full visible text.
	BodyText() string
}
