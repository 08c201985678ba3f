package session

import (
	"log"

	"github.com/cverooster/cverooster-client/filter"
	"github.com/cverooster/cverooster-client/viewmodel"
)

const (
	ClassInfo   = "text-info"
	ClassDanger = "text-danger"
)

type AnnotationClient interface {
	SaveComment(cveID, comment string) error
	DeleteComment(cveID string) error
	SaveLabel(cveID, label string) error
	DeleteLabel(cveID string) error
}

// Status is the inline message shown next to a save button.
type Status struct {
	OK      bool
	Message string
	Class   string
}

// Annotator saves the comment and label a user attaches to a CVE. Failures
// are reported through the returned Status, never as errors.
type Annotator struct {
	client   AnnotationClient
	messages viewmodel.Messages
}

func NewAnnotator(client AnnotationClient, locale viewmodel.Locale) *Annotator {
	return &Annotator{client: client, messages: locale.Messages()}
}

// SaveComment stores comment, or deletes the stored one when comment is empty.
func (a *Annotator) SaveComment(cveID, comment string) Status {
	var err error
	if comment != "" {
		err = a.client.SaveComment(cveID, comment)
	} else {
		err = a.client.DeleteComment(cveID)
	}
	return a.status(err)
}

// SaveLabel stores the first checked label of the row, or deletes the stored
// one when none is checked.
func (a *Annotator) SaveLabel(cveID string, labels []filter.Checkbox) Status {
	var label string
	for _, l := range labels {
		if l.Checked {
			label = l.Value
			break
		}
	}

	var err error
	if label != "" {
		err = a.client.SaveLabel(cveID, label)
	} else {
		err = a.client.DeleteLabel(cveID)
	}
	return a.status(err)
}

func (a *Annotator) status(err error) Status {
	if err != nil {
		log.Printf("%+v", err)
		return Status{Message: a.messages.SaveFailed, Class: ClassDanger}
	}
	return Status{OK: true, Message: a.messages.Saved, Class: ClassInfo}
}

// CheckLabel checks labels[i] and unchecks the others of the row, so a row
// carries at most one label.
func CheckLabel(labels []filter.Checkbox, i int) []filter.Checkbox {
	out := make([]filter.Checkbox, len(labels))
	for j, l := range labels {
		out[j] = filter.Checkbox{Value: l.Value, Checked: j == i}
	}
	return out
}
