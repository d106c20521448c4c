package services

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Session is one browser page driving the target site. The workflow only
// talks to this interface so tests can run against a scripted fake.
type Session interface {
	// Navigate loads a URL and waits for the network to go idle.
	Navigate(url string) error
	// Click performs a structural click on the first selector match.
	Click(selector string) error
	// Fill sets an input's value the way a user typing would.
	Fill(selector, value string) error
	// TypeInto focuses the element and types text key by key, for
	// autocomplete widgets that listen to keystrokes.
	TypeInto(selector, text string) error
	// WaitForSelector blocks until the selector is visible.
	WaitForSelector(selector string) error
	// WaitForNavigation blocks until the pending navigation settles.
	WaitForNavigation() error
	// Document exposes the current page for querying and filling.
	Document() Document
	// Screenshot writes a full-page capture to path.
	Screenshot(path string) error
	Close() error
}

// BrowserService owns the headless Chromium instance and hands out
// sessions. One instance is created per workflow run and always released
// when the run ends, successful or not.
type BrowserService struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewBrowserService(headless bool) (*BrowserService, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-blink-features=AutomationControlled",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &BrowserService{pw: pw, browser: browser}, nil
}

// NewSession opens a fresh page.
func (s *BrowserService) NewSession() (Session, error) {
	page, err := s.browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: 1400, Height: 768},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &playwrightSession{page: page}, nil
}

func (s *BrowserService) Close() error {
	if s.browser != nil {
		s.browser.Close()
	}
	if s.pw != nil {
		return s.pw.Stop()
	}
	return nil
}
