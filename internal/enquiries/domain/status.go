// Package domain holds the enquiry rules that do not depend on storage or transport.
package domain

import (
	"errors"
	"strings"
)

// Status is the triage state of an enquiry.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

// ErrUnknownStatus is returned for values outside the lifecycle.
var ErrUnknownStatus = errors.New("unknown enquiry status")

var knownStatuses = map[Status]struct{}{
	StatusNew:        {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusArchived:   {},
}

// Statuses lists every lifecycle value in display order.
func Statuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusCompleted, StatusArchived}
}

// Valid reports whether s is one of the lifecycle values.
func (s Status) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts only exact lifecycle values.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.Valid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// StatusList renders the lifecycle values for messages, e.g. "new, in-progress, ...".
func StatusList() string {
	parts := make([]string, 0, len(knownStatuses))
	for _, s := range Statuses() {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}
