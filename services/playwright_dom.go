package services

import (
	"github.com/playwright-community/playwright-go"
)

// playwrightSession adapts a Playwright page to the Session interface.
type playwrightSession struct {
	page playwright.Page
}

func (s *playwrightSession) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	return err
}

func (s *playwrightSession) Click(selector string) error {
	return s.page.Locator(selector).First().Click()
}

func (s *playwrightSession) Fill(selector, value string) error {
	return s.page.Locator(selector).First().Fill(value)
}

// TypeInto clicks the target first, then sends real keystrokes. The
// site's category chooser filters its option list on keyup, which a
// plain value assignment would never trigger.
func (s *playwrightSession) TypeInto(selector, text string) error {
	if err := s.page.Locator(selector).First().Click(); err != nil {
		return err
	}
	return s.page.Keyboard().Type(text)
}

func (s *playwrightSession) WaitForSelector(selector string) error {
	_, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State: playwright.WaitForSelectorStateVisible,
	})
	return err
}

func (s *playwrightSession) WaitForNavigation() error {
	return s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}

func (s *playwrightSession) Document() Document {
	return &playwrightDocument{page: s.page}
}

func (s *playwrightSession) Screenshot(path string) error {
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (s *playwrightSession) Close() error {
	return s.page.Close()
}

// playwrightDocument queries the live page.
type playwrightDocument struct {
	page playwright.Page
}

func (d *playwrightDocument) FindAll(selector string) []Element {
	locators, err := d.page.Locator(selector).All()
	if err != nil {
		return nil
	}

	elements := make([]Element, 0, len(locators))
	for _, loc := range locators {
		elements = append(elements, &playwrightElement{loc: loc})
	}
	return elements
}

func (d *playwrightDocument) First(selector string) (Element, bool) {
	loc := d.page.Locator(selector).First()
	count, err := loc.Count()
	if err != nil || count == 0 {
		return nil, false
	}
	return &playwrightElement{loc: loc}, true
}

func (d *playwrightDocument) BodyText() string {
	text, err := d.page.Locator("body").InnerText()
	if err != nil {
		return ""
	}
	return text
}

// playwrightElement drives one node. Mutations go through in-page
// JavaScript so the behavior matches what the site's own scripts see;
// events are dispatched separately with bubbles enabled.
type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) Text() string {
	text, err := e.loc.TextContent()
	if err != nil {
		return ""
	}
	return text
}

func (e *playwrightElement) Value() string {
	return e.Attribute("value")
}

func (e *playwrightElement) Attribute(name string) string {
	value, err := e.loc.GetAttribute(name)
	if err != nil {
		return ""
	}
	return value
}

func (e *playwrightElement) SetValue(value string) error {
	_, err := e.loc.Evaluate(`(el, value) => { el.value = value; }`, value)
	return err
}

func (e *playwrightElement) SetParagraph(text string) error {
	_, err := e.loc.Evaluate(`(el, text) => {
		el.innerHTML = '';
		const paragraph = document.createElement('p');
		paragraph.textContent = text;
		el.appendChild(paragraph);
	}`, text)
	return err
}

func (e *playwrightElement) SelectIndex(index int) error {
	_, err := e.loc.Evaluate(`(el, index) => { el.selectedIndex = index; }`, index)
	return err
}

func (e *playwrightElement) OptionCount() int {
	count, err := e.loc.Locator("option").Count()
	if err != nil {
		return 0
	}
	return count
}

func (e *playwrightElement) Check() error {
	_, err := e.loc.Evaluate(`el => { el.checked = true; }`, nil)
	return err
}

func (e *playwrightElement) DispatchInput() error {
	return e.loc.DispatchEvent("input", nil)
}

func (e *playwrightElement) DispatchChange() error {
	return e.loc.DispatchEvent("change", nil)
}

func (e *playwrightElement) ScrollIntoView() error {
	_, err := e.loc.Evaluate(`el => el.scrollIntoView({ behavior: 'smooth', block: 'center' })`, nil)
	return err
}

func (e *playwrightElement) Click() error {
	_, err := e.loc.Evaluate(`el => el.click()`, nil)
	return err
}
