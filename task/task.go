package task

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/lithammer/shortuuid/v4"
)

// maxSearchQueries is how many search texts one Search task accepts.
const maxSearchQueries = 3

// Params is implemented by the five parameter structs. Validation runs
// synchronously before a task is started; a task never begins with invalid
// parameters.
type Params interface {
	Kind() Kind

	// Validate reports the first validation problem, or nil.
	Validate() error

	// InputPaths lists the input files subject to the pre-start size limit.
	// Merge returns none: its inputs are checked per file during the run and
	// skipped on failure instead of blocking the whole task.
	InputPaths() []string
}

// TaskSpec binds one run identifier to a task kind and its parameters. It is
// created at start time, owned by the Runner for the task's lifetime and
// discarded when the consumer observes the terminal event.
type TaskSpec struct {
	ID        string
	Params    Params
	CreatedAt time.Time
}

func NewSpec(p Params) TaskSpec {
	return TaskSpec{
		ID:        fmt.Sprintf("%s_%d", shortuuid.New(), time.Now().Unix()),
		Params:    p,
		CreatedAt: time.Now(),
	}
}

type SearchParams struct {
	PDFPath       string   `json:"pdfPath"`
	Queries       []string `json:"queries"`
	CaseSensitive bool     `json:"caseSensitive"`
	RequireAll    bool     `json:"requireAll"`
}

func (p SearchParams) Kind() Kind           { return KindSearch }
func (p SearchParams) InputPaths() []string { return []string{p.PDFPath} }

func (p SearchParams) Validate() error {
	if err := checkInputFile(p.PDFPath); err != nil {
		return err
	}
	if len(p.Queries) == 0 {
		return errors.New("at least one search text is required")
	}
	if len(p.Queries) > maxSearchQueries {
		return fmt.Errorf("at most %d search texts are supported", maxSearchQueries)
	}
	for _, q := range p.Queries {
		if strings.TrimSpace(q) == "" {
			return errors.New("search texts must not be empty")
		}
	}
	return nil
}

type NumberParams struct {
	PDFPath     string `json:"pdfPath"`
	StartNumber int    `json:"startNumber"`
	StartPage   int    `json:"startPage"`
	UseInitial  bool   `json:"useInitial"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Prefix      string `json:"prefix"`
}

func (p NumberParams) Kind() Kind           { return KindNumber }
func (p NumberParams) InputPaths() []string { return []string{p.PDFPath} }

// Validate accepts any integer fields: a start page beyond the document is
// valid and simply numbers zero pages.
func (p NumberParams) Validate() error {
	return checkInputFile(p.PDFPath)
}

type MergeParams struct {
	Files      []string `json:"files"`
	OutputName string   `json:"outputName"`
}

func (p MergeParams) Kind() Kind           { return KindMerge }
func (p MergeParams) InputPaths() []string { return nil }

func (p MergeParams) Validate() error {
	if len(p.Files) == 0 {
		return errors.New("add at least one file to merge")
	}
	if strings.TrimSpace(p.OutputName) == "" {
		return errors.New("an output name is required")
	}
	return nil
}

type ExtractParams struct {
	PDFPath string `json:"pdfPath"`
	Ranges  string `json:"ranges"`
}

func (p ExtractParams) Kind() Kind           { return KindExtract }
func (p ExtractParams) InputPaths() []string { return []string{p.PDFPath} }

func (p ExtractParams) Validate() error {
	if err := checkInputFile(p.PDFPath); err != nil {
		return err
	}
	if strings.TrimSpace(p.Ranges) == "" {
		return errors.New("a page-range expression is required")
	}
	return nil
}

type ConvertParams struct {
	PDFPath string `json:"pdfPath"`
}

func (p ConvertParams) Kind() Kind           { return KindConvert }
func (p ConvertParams) InputPaths() []string { return []string{p.PDFPath} }

func (p ConvertParams) Validate() error {
	return checkInputFile(p.PDFPath)
}

func checkInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("an input file is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("could not access input file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input %s is not a regular file", path)
	}
	return nil
}

// SplitQueries splits a search expression into individual search texts.
// Quoting keeps phrases together: `invoice "grand total"` yields two texts.
func SplitQueries(expr string) ([]string, error) {
	parts, err := shlex.Split(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query syntax: %w", err)
	}
	return parts, nil
}
