// Package selector picks and validates the classifier attribute.
package selector

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/telhawk-systems/xes2arff/internal/xes"
)

// Recommended is the attribute suggested to the user.
const Recommended = "org:resource"

// Prompts shown by the interactive selector.
const (
	Question = "Which event attribute do you want to use for dimension reduction? (recommended: " + Recommended + ")"
	Retry    = "Chosen attribute is not contained in the file.\nPlease try another attribute."
)

var (
	// ErrClassifierNotFound is returned when a key does not occur in the input.
	ErrClassifierNotFound = errors.New("classifier attribute not found in input")
	// ErrNoClassifier is returned when the prompt input ends before a valid key was entered.
	ErrNoClassifier = errors.New("no classifier attribute selected")
)

// Contains reports whether key occurs literally somewhere in raw. This is a
// textual check: a key that only shows up inside a value passes too.
func Contains(raw []byte, key string) bool {
	if key == "" {
		return false
	}
	return bytes.Contains(raw, []byte(key))
}

// Validate checks key against raw and returns ErrClassifierNotFound if absent.
func Validate(raw []byte, key string) error {
	if !Contains(raw, key) {
		return fmt.Errorf("%w: %q", ErrClassifierNotFound, key)
	}
	return nil
}

// ValidateStructural checks that key is an attribute key of at least one event.
func ValidateStructural(log *xes.Log, key string) error {
	if !xes.HasEventKey(log, key) {
		return fmt.Errorf("%w: no event has attribute %q", ErrClassifierNotFound, key)
	}
	return nil
}

// Prompter asks for the classifier on in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading lines from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Choose asks until the entered key is contained in raw. It returns
// ErrNoClassifier when in is exhausted first.
func (p *Prompter) Choose(raw []byte) (string, error) {
	fmt.Fprintln(p.out, Question)
	for {
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read classifier: %w", err)
		}
		key := strings.TrimRight(line, "\r\n")
		if Contains(raw, key) {
			return key, nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoClassifier
		}
		fmt.Fprintln(p.out, Retry)
	}
}
