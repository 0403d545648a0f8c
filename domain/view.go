package domain

// FormState is the phase of the create/edit form session.
type FormState string

const (
	FormIdle      FormState = "idle"
	FormEditing   FormState = "editing"
	FormSubmitted FormState = "submitted"
	FormClosed    FormState = "closed"
)

// FormMode tells whether the open form creates a task or edits one.
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// FormSnapshot is a read-only copy of the form session.
type FormSnapshot struct {
	State     FormState   `json:"state"`
	Mode      FormMode    `json:"mode,omitempty"`
	EditingID string      `json:"editingId,omitempty"`
	Draft     *Draft      `json:"draft,omitempty"`
	Errors    FieldErrors `json:"errors"`
}

// View is everything the presentation layer needs to render one frame.
type View struct {
	Selection     Selection       `json:"selection"`
	Today         string          `json:"today"`
	Heading       DateHeading     `json:"heading"`
	Tasks         []Task          `json:"tasks"`
	Categories    []string        `json:"categories"`
	Form          FormSnapshot    `json:"form"`
	HighlightedID string          `json:"highlightedTaskId,omitempty"`
	Dictation     DictationStatus `json:"dictation"`
}
