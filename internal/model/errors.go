package model

import (
	"fmt"
	"strings"
)

var ErrSourceDirNotFound *ErrNotFound

type ErrNotFound struct {
	Subject string
}

func (e *ErrNotFound) Error() string {
	return strings.TrimSpace(fmt.Sprintf("%s not found", e.Subject))
}

func NewErrNotFound(subject string) *ErrNotFound {
	return &ErrNotFound{Subject: subject}
}

func init() {
	ErrSourceDirNotFound = NewErrNotFound("source directory")
}
