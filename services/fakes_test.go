package services

import (
	"context"
	"time"
)

// fakeElement records every mutation the code under test performs.
type fakeElement struct {
	text  string
	value string
	attrs map[string]string

	setValue      string
	paragraph     string
	selectedIndex int
	optionCount   int
	checked       bool

	inputEvents  int
	changeEvents int
	clicks       int
	scrolled     bool

	setValueErr  error
	paragraphErr error
	clickErr     error
}

func (e *fakeElement) Text() string  { return e.text }
func (e *fakeElement) Value() string { return e.value }

func (e *fakeElement) Attribute(name string) string {
	return e.attrs[name]
}

func (e *fakeElement) SetValue(value string) error {
	if e.setValueErr != nil {
		return e.setValueErr
	}
	e.setValue = value
	return nil
}

func (e *fakeElement) SetParagraph(text string) error {
	if e.paragraphErr != nil {
		return e.paragraphErr
	}
	e.paragraph = text
	return nil
}

func (e *fakeElement) SelectIndex(index int) error {
	e.selectedIndex = index
	return nil
}

func (e *fakeElement) OptionCount() int { return e.optionCount }

func (e *fakeElement) Check() error {
	e.checked = true
	return nil
}

func (e *fakeElement) DispatchInput() error {
	e.inputEvents++
	return nil
}

func (e *fakeElement) DispatchChange() error {
	e.changeEvents++
	return nil
}

func (e *fakeElement) ScrollIntoView() error {
	e.scrolled = true
	return nil
}

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	return nil
}

// fakeDocument serves canned elements keyed by the exact selector the
// production code queries with.
type fakeDocument struct {
	elements map[string][]*fakeElement
	bodyText string
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{elements: make(map[string][]*fakeElement)}
}

func (d *fakeDocument) add(selector string, els ...*fakeElement) *fakeDocument {
	d.elements[selector] = append(d.elements[selector], els...)
	return d
}

func (d *fakeDocument) FindAll(selector string) []Element {
	out := make([]Element, 0, len(d.elements[selector]))
	for _, el := range d.elements[selector] {
		out = append(out, el)
	}
	return out
}

func (d *fakeDocument) First(selector string) (Element, bool) {
	els := d.elements[selector]
	if len(els) == 0 {
		return nil, false
	}
	return els[0], true
}

func (d *fakeDocument) BodyText() string { return d.bodyText }

// fakeSession is a scripted browser: each URL maps to a page document.
type fakeSession struct {
	docs    map[string]*fakeDocument
	current *fakeDocument

	navigations []string
	clicked     []string
	filled      map[string]string
	typed       map[string]string

	clickErrs     map[string]error
	screenshotErr error
	screenshots   []string
	closed        bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		docs:      make(map[string]*fakeDocument),
		current:   newFakeDocument(),
		filled:    make(map[string]string),
		typed:     make(map[string]string),
		clickErrs: make(map[string]error),
	}
}

func (s *fakeSession) addPage(url string, doc *fakeDocument) *fakeSession {
	s.docs[url] = doc
	return s
}

func (s *fakeSession) Navigate(url string) error {
	s.navigations = append(s.navigations, url)
	if doc, ok := s.docs[url]; ok {
		s.current = doc
	} else {
		s.current = newFakeDocument()
	}
	return nil
}

func (s *fakeSession) Click(selector string) error {
	s.clicked = append(s.clicked, selector)
	return s.clickErrs[selector]
}

func (s *fakeSession) Fill(selector, value string) error {
	s.filled[selector] = value
	return nil
}

func (s *fakeSession) TypeInto(selector, text string) error {
	s.typed[selector] = text
	return nil
}

func (s *fakeSession) WaitForSelector(selector string) error { return nil }
func (s *fakeSession) WaitForNavigation() error              { return nil }

func (s *fakeSession) Document() Document { return s.current }

func (s *fakeSession) Screenshot(path string) error {
	if s.screenshotErr != nil {
		return s.screenshotErr
	}
	s.screenshots = append(s.screenshots, path)
	return nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSession) clickedSelector(selector string) bool {
	for _, c := range s.clicked {
		if c == selector {
			return true
		}
	}
	return false
}

// fakeGenerator returns canned answers and counts invocations.
type fakeGenerator struct {
	answers   []string
	calls     int
	questions [][]string
}

func (g *fakeGenerator) GenerateAnswers(ctx context.Context, questions []string, extraContext string) []string {
	g.calls++
	g.questions = append(g.questions, questions)
	return g.answers
}

// instantWaiter makes settle pauses free in tests.
type instantWaiter struct{}

func (instantWaiter) Settle(d time.Duration) {}
