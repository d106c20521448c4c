package services

import (
	"context"
	"log"
)

// WorkflowRunner is what the HTTP layer invokes. Split out so controller
// tests can run without a real browser.
type WorkflowRunner interface {
	Run(ctx context.Context, app ApplicationContext) (*WorkflowResult, error)
}

// AutomationRunner launches a fresh headless browser for every run and
// guarantees it is released no matter how the workflow ends.
type AutomationRunner struct {
	Workflow *ApplicationWorkflow
	Headless bool
}

func NewAutomationRunner(workflow *ApplicationWorkflow, headless bool) *AutomationRunner {
	return &AutomationRunner{Workflow: workflow, Headless: headless}
}

func (r *AutomationRunner) Run(ctx context.Context, app ApplicationContext) (*WorkflowResult, error) {
	browser, err := NewBrowserService(r.Headless)
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	session, err := browser.NewSession()
	if err != nil {
		return nil, err
	}
	defer session.Close()

	result, err := r.Workflow.Run(ctx, session, app)
	if err != nil {
		log.Printf("Workflow error: %v", err)
	}
	return result, err
}
