package services

import (
	"fmt"
	"log"
)

// Selectors for the target site's application form pieces.
const (
	customQuestionSelector    = "textarea.custom-question-answer"
	quillEditorSelector       = `.ql-editor[contenteditable="true"]`
	genericInputSelector      = `input[type="text"], textarea:not(.custom-question-answer)`
	selectSelector            = "select"
	checkboxSelector          = `input[type="checkbox"]`
	coverLetterRepairSelector = "#cover_letter_holder .ql-editor"
)

// DefaultCoverLetter is inserted into rich-text editors when no generated
// answer is available for them.
const DefaultCoverLetter = "I'm a passionate software developer with experience in full-stack development. " +
	"I've worked on multiple projects and am excited about this opportunity to contribute my skills. " +
	"I'm adaptable, fast-learning, and eager to join your team."

// FillResult reports how many fields of each kind were populated, plus
// per-field errors. It is diagnostic; the workflow submits regardless.
type FillResult struct {
	TextareasFilled    int      `json:"textareasFilled"`
	QuillEditorsFilled int      `json:"quillEditorsFilled"`
	SelectsFilled      int      `json:"selectsFilled"`
	CheckboxesChecked  int      `json:"checkboxesChecked"`
	Errors             []string `json:"errors"`
}

// mapAnswerIndex maps a generic field's document position to an answer
// index. When a rich-text editor is present it consumes answers[0] as the
// cover letter, so generic fields shift up by one.
func mapAnswerIndex(fieldPosition int, hasQuillEditor bool) int {
	if hasQuillEditor {
		return fieldPosition + 1
	}
	return fieldPosition
}

// FormFillerService populates a detected application form with generated
// answers. Every failure is recorded per field; Fill never aborts.
type FormFillerService struct{}

// Fill maps answers onto the form currently shown in doc. Detection steps
// run in a fixed order and each tolerates zero matches:
// custom-question textareas, rich-text editors, a generic input fallback
// (only when no custom questions exist), dropdowns, then checkboxes.
func (s *FormFillerService) Fill(doc Document, answers []string) FillResult {
	result := FillResult{Errors: []string{}}

	textareas := doc.FindAll(customQuestionSelector)
	log.Printf("Found %d custom question textareas", len(textareas))

	for i, textarea := range textareas {
		if i < len(answers) && answers[i] != "" {
			if err := fillField(textarea, answers[i]); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("textarea #%d: %v", i, err))
				continue
			}
			result.TextareasFilled++
		} else {
			log.Printf("No answer available for textarea #%d", i)
		}
	}

	quillEditors := doc.FindAll(quillEditorSelector)
	log.Printf("Found %d Quill editors", len(quillEditors))

	coverLetter := DefaultCoverLetter
	if len(answers) > 0 && answers[0] != "" {
		coverLetter = answers[0]
	}

	for i, editor := range quillEditors {
		if err := fillEditor(editor, coverLetter); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Quill editor #%d: %v", i, err))
			continue
		}
		result.QuillEditorsFilled++
	}

	if len(textareas) == 0 {
		inputs := doc.FindAll(genericInputSelector)
		log.Printf("Found %d generic text inputs and textareas", len(inputs))

		for i, input := range inputs {
			answerIndex := mapAnswerIndex(i, len(quillEditors) > 0)
			if answerIndex < len(answers) && answers[answerIndex] != "" {
				if err := fillField(input, answers[answerIndex]); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("input #%d: %v", i, err))
					continue
				}
				result.TextareasFilled++
			} else {
				log.Printf("No answer available for input #%d", i)
			}
		}
	}

	selects := doc.FindAll(selectSelector)
	log.Printf("Found %d select elements", len(selects))

	for i, sel := range selects {
		if sel.OptionCount() > 1 {
			// Index 0 is assumed to be the placeholder prompt option.
			if err := sel.SelectIndex(1); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("select #%d: %v", i, err))
				continue
			}
			sel.DispatchChange()
			result.SelectsFilled++
		}
	}

	checkboxes := doc.FindAll(checkboxSelector)
	log.Printf("Found %d checkboxes", len(checkboxes))

	for i, checkbox := range checkboxes {
		if err := checkbox.Check(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("checkbox #%d: %v", i, err))
			continue
		}
		checkbox.DispatchChange()
		result.CheckboxesChecked++
	}

	if result.QuillEditorsFilled == 0 {
		s.repairCoverLetter(doc, coverLetter)
	}

	return result
}

// repairCoverLetter is a one-shot fallback for pages where the generic
// editor query misses: target the cover-letter holder directly.
func (s *FormFillerService) repairCoverLetter(doc Document, coverLetter string) {
	holder, ok := doc.First(coverLetterRepairSelector)
	if !ok {
		return
	}

	log.Printf("Attempting alternative Quill editor filling method...")
	if err := holder.SetParagraph(coverLetter); err != nil {
		log.Printf("Alternative Quill editor filling failed: %v", err)
		return
	}
	holder.DispatchInput()
	log.Printf("Directly set cover letter on %s", coverLetterRepairSelector)
}

func fillField(field Element, value string) error {
	if err := field.SetValue(value); err != nil {
		return err
	}
	field.DispatchInput()
	field.DispatchChange()
	return nil
}

func fillEditor(editor Element, text string) error {
	if err := editor.SetParagraph(text); err != nil {
		return err
	}
	editor.DispatchInput()
	editor.DispatchChange()
	return nil
}
