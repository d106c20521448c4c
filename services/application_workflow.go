package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	homeURL        = "https://internshala.com/"
	internshipsURL = "https://internshala.com/internships/"

	loginCTASelector    = ".login-cta"
	emailSelector       = `input[type="email"]`
	passwordSelector    = `input[type="password"]`
	loginSubmitSelector = `button[type="submit"]`

	categoryChooserSelector = "#select_category_chosen"
	categorySearchSelector  = ".chosen-choices .chosen-search-input"
	categoryOptionSelector  = ".chosen-drop .chosen-results .active-result"
	categoryWaitSelector    = ".chosen-drop .active-result"
	remoteToggleSelector    = "#work_from_home"
	listingLinkSelector     = "div#internship_list_container a"

	listingContainerSelector = ".individual_internship"
	internshipIDAttribute    = "internshipid"
	applyButtonSelector      = "#apply_now_button"
	formFieldSelector        = "form input, form textarea, form select"
	questionLabelSelector    = ".assessment_question label"
)

// ApplicationContext is the operator-supplied input for one run: login
// credentials for the site, the role to search, and the candidate letter
// used as generation context. Nothing here is persisted.
type ApplicationContext struct {
	Email    string
	Password string
	Role     string
	Letter   string
}

// Listing is one internship posting discovered during a run.
type Listing struct {
	URL string
	ID  string
}

// WorkflowResult summarizes one run.
type WorkflowResult struct {
	ListingsFound int      `json:"listings_found"`
	Processed     int      `json:"processed"`
	Skipped       int      `json:"skipped"`
	Submitted     int      `json:"submitted"`
	AppliedIDs    []string `json:"applied_ids"`
	Screenshots   []string `json:"screenshots,omitempty"`
}

// ApplicationWorkflow drives the end-to-end sequence: log in, search by
// role, walk the discovered listings, skip ones already applied to, fill
// and submit each application, verify the confirmation, and persist the
// applied set after every success.
type ApplicationWorkflow struct {
	Store       AppliedStore
	Generator   AnswerGenerator
	Filler      *FormFillerService
	Locator     *ActionLocatorService
	Checker     *SubmissionCheckerService
	Screenshots *S3Service
	Waiter      Waiter
	MaxListings int
}

func NewApplicationWorkflow(store AppliedStore, generator AnswerGenerator) *ApplicationWorkflow {
	return &ApplicationWorkflow{
		Store:       store,
		Generator:   generator,
		Filler:      &FormFillerService{},
		Locator:     &ActionLocatorService{},
		Checker:     &SubmissionCheckerService{},
		Waiter:      NewFixedWaiter(),
		MaxListings: 5,
	}
}

// Run executes the whole workflow on an open session. Login and search
// failures abort the run; everything past that degrades per listing. The
// applied set is saved after each confirmed application, so an abort
// keeps the progress made so far.
func (w *ApplicationWorkflow) Run(ctx context.Context, session Session, app ApplicationContext) (*WorkflowResult, error) {
	applied, err := w.Store.Load()
	if err != nil {
		log.Printf("Error loading applied internships: %v", err)
		applied = NewAppliedSet()
	}
	log.Printf("Loaded %d previously applied internships", applied.Len())

	if err := w.login(session, app); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	listings, err := w.search(session, app.Role)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	result := &WorkflowResult{
		ListingsFound: len(listings),
		AppliedIDs:    []string{},
	}

	max := w.MaxListings
	if max > len(listings) {
		max = len(listings)
	}

	for i := 0; i < max; i++ {
		log.Printf("Processing internship %d/%d: %s", i+1, max, listings[i])
		if err := w.processListing(ctx, session, listings[i], app, applied, result); err != nil {
			return result, err
		}
	}

	log.Printf("Application process completed")
	log.Printf("Applied internship IDs: %v", applied.IDs())
	if err := w.Store.Save(applied); err != nil {
		log.Printf("Error saving applied internships: %v", err)
	}

	w.Waiter.Settle(2 * time.Second)
	return result, nil
}

func (w *ApplicationWorkflow) login(session Session, app ApplicationContext) error {
	log.Printf("Navigating to Internshala...")
	if err := session.Navigate(homeURL); err != nil {
		return err
	}
	if err := session.Click(loginCTASelector); err != nil {
		return err
	}
	if err := session.WaitForSelector(emailSelector); err != nil {
		return err
	}

	if err := session.Fill(emailSelector, app.Email); err != nil {
		return err
	}
	if err := session.Fill(passwordSelector, app.Password); err != nil {
		return err
	}
	if err := session.Click(loginSubmitSelector); err != nil {
		return err
	}
	if err := session.WaitForNavigation(); err != nil {
		return err
	}

	log.Printf("Successfully logged in")
	return nil
}

// search selects the role in the category chooser, narrows to remote
// listings, and collects listing URLs from the results container.
func (w *ApplicationWorkflow) search(session Session, role string) ([]string, error) {
	log.Printf("Searching for %s internships...", role)
	if err := session.Navigate(internshipsURL); err != nil {
		return nil, err
	}
	if err := session.WaitForSelector(categoryChooserSelector); err != nil {
		return nil, err
	}

	if err := session.Click(categoryChooserSelector); err != nil {
		return nil, err
	}
	if err := session.TypeInto(categorySearchSelector, role); err != nil {
		return nil, err
	}
	if err := session.WaitForSelector(categoryWaitSelector); err != nil {
		return nil, err
	}
	if err := session.Click(categoryOptionSelector); err != nil {
		return nil, err
	}

	if err := session.WaitForSelector(remoteToggleSelector); err != nil {
		return nil, err
	}
	doc := session.Document()
	if toggle, ok := doc.First(remoteToggleSelector); ok {
		toggle.Check()
	}

	w.Waiter.Settle(2 * time.Second)

	var urls []string
	for _, anchor := range doc.FindAll(listingLinkSelector) {
		if href := anchor.Attribute("href"); href != "" {
			urls = append(urls, absoluteURL(href))
		}
	}

	log.Printf("Found %d internships to process", len(urls))
	return urls, nil
}

func (w *ApplicationWorkflow) processListing(ctx context.Context, session Session, listingURL string, app ApplicationContext, applied *AppliedSet, result *WorkflowResult) error {
	if err := session.Navigate(listingURL); err != nil {
		return err
	}
	result.Processed++

	doc := session.Document()

	listing := Listing{URL: listingURL}
	if container, ok := doc.First(listingContainerSelector); ok {
		listing.ID = container.Attribute(internshipIDAttribute)
	}

	if listing.ID != "" {
		log.Printf("Internship ID: %s", listing.ID)
		if applied.Has(listing.ID) {
			log.Printf("Already applied to internship %s, skipping...", listing.ID)
			result.Skipped++
			return nil
		}
	}

	if !w.triggerApply(session, doc) {
		log.Printf("No apply button found, skipping to next internship")
		return nil
	}

	// Let the application form render.
	w.Waiter.Settle(2 * time.Second)
	doc = session.Document()

	if _, ok := doc.First(formFieldSelector); ok {
		log.Printf("Form detected, extracting questions...")
		questions := w.extractQuestions(doc)
		log.Printf("Found %d questions %v", len(questions), questions)

		if len(questions) > 0 {
			log.Printf("Generating answers...")
			answers := w.Generator.GenerateAnswers(ctx, questions, buildAnswerContext(app.Letter))
			log.Printf("Answers generated, filling form...")

			fillResult := w.Filler.Fill(doc, answers)
			log.Printf("Form filling result: %+v", fillResult)
			w.Waiter.Settle(1 * time.Second)
		}
	}

	if !w.Locator.ClickByText(doc, "submit application") {
		log.Printf("Could not find submit button")
		return nil
	}
	log.Printf("Clicked submit application button")
	w.Waiter.Settle(3 * time.Second)

	if w.Checker.CheckForSuccess(doc) {
		log.Printf("Successfully applied to internship %s", listingURL)
		result.Submitted++
		if listing.ID != "" {
			applied.Add(listing.ID)
			result.AppliedIDs = append(result.AppliedIDs, listing.ID)
			if err := w.Store.Save(applied); err != nil {
				log.Printf("Error saving applied internships: %v", err)
			} else {
				log.Printf("Successfully saved applied internships list")
			}
		}
		w.captureConfirmation(session, listing.ID, result)
	} else {
		log.Printf("Could not confirm successful application")
	}

	w.Waiter.Settle(1 * time.Second)
	return nil
}

// triggerApply tries the fixed apply button first, structural click then
// JavaScript click, and falls back to fuzzy text matching.
func (w *ApplicationWorkflow) triggerApply(session Session, doc Document) bool {
	if button, ok := doc.First(applyButtonSelector); ok {
		button.ScrollIntoView()

		if err := session.Click(applyButtonSelector); err == nil {
			log.Printf("Clicked apply button using structural click")
			return true
		}
		if err := button.Click(); err == nil {
			log.Printf("Clicked apply button using JavaScript")
			return true
		}
	}

	if w.Locator.ClickByText(doc, "apply") {
		log.Printf("Clicked alternative apply button")
		return true
	}

	return false
}

func (w *ApplicationWorkflow) extractQuestions(doc Document) []string {
	var questions []string
	for _, label := range doc.FindAll(questionLabelSelector) {
		questions = append(questions, strings.TrimSpace(label.Text()))
	}
	return questions
}

// captureConfirmation takes a best-effort screenshot of the confirmation
// page. Failures are logged and never affect the run.
func (w *ApplicationWorkflow) captureConfirmation(session Session, internshipID string, result *WorkflowResult) {
	if internshipID == "" {
		internshipID = "unknown"
	}
	name := fmt.Sprintf("confirmation_%s_%d.png", internshipID, time.Now().Unix())
	path := filepath.Join(os.TempDir(), name)

	if err := session.Screenshot(path); err != nil {
		log.Printf("Failed to capture confirmation screenshot: %v", err)
		return
	}

	if w.Screenshots != nil {
		if url, err := w.Screenshots.UploadFile(path, name); err == nil {
			result.Screenshots = append(result.Screenshots, url)
			os.Remove(path)
			return
		} else {
			log.Printf("Failed to upload confirmation screenshot: %v", err)
		}
	}

	result.Screenshots = append(result.Screenshots, path)
}

func buildAnswerContext(letter string) string {
	return "Answer the following questions directly and positively as a candidate. " +
		`If asked about relocation, say "yes." Use the provided letter for context. ` +
		"Respond without explanations or formatting, just the plain text answers. " +
		"Letter start here: " + letter
}

func absoluteURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return "https://internshala.com" + href
	}
	return href
}
