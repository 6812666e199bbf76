// Package wizard drives the claim wizard: start a workflow, upload a file,
// pick products, submit. State lives in one Controller; rendering is a pure
// projection of a Snapshot.
package wizard

import (
	"io"
	"os"
)

type Screen string

const (
	ScreenStart    Screen = "start"
	ScreenUpload   Screen = "upload"
	ScreenProducts Screen = "products"
	ScreenComplete Screen = "complete"
)

// Screens lists every screen in wizard order.
var Screens = []Screen{ScreenStart, ScreenUpload, ScreenProducts, ScreenComplete}

// Step is one entry of the step indicator.
type Step string

const (
	StepNone             Step = ""
	StepWorkflowStarted  Step = "workflow-started"
	StepFileUpload       Step = "file-upload"
	StepSubmitIssue      Step = "submit-issue"
	StepConfirmSelection Step = "confirm-selection"
	StepComplete         Step = "complete"
)

// Steps is the fixed order of the step indicator.
var Steps = []Step{StepWorkflowStarted, StepFileUpload, StepSubmitIssue, StepConfirmSelection, StepComplete}

type Product struct {
	ID    string `json:"id"`
	Label string `json:"value"`
}

// File is the document picked for upload. Size < 0 means unknown.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FileFromPath builds a File backed by a file on disk.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if info.IsDir() {
		return File{}, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return File{
		Name: info.Name(),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// Claim is the in-progress claim. It is never persisted.
type Claim struct {
	ResumeURL string
	File      *File
	Summary   string
	Offered   []Product
	Selected  []Product
	ClaimID   string
}

func (c Claim) clone() Claim {
	out := c
	out.Offered = append([]Product(nil), c.Offered...)
	out.Selected = append([]Product(nil), c.Selected...)
	return out
}

// IsSelected reports whether the product with id is in the selection.
func (c Claim) IsSelected(id string) bool {
	for _, p := range c.Selected {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Snapshot is everything a renderer needs.
type Snapshot struct {
	Screen Screen
	Step   Step
	Claim  Claim
}
