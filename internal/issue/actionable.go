// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

type (
	// ActionableError is a user-facing failure: the operation that failed, the
	// path or command involved, what to try next, and optionally a guide.
	//
	//	err := issue.NewErrorContext().
	//		WithIssue(issue.BuildFailedId).
	//		WithOperation("run make on lgrind").
	//		WithResource("cd .../source; make clean; make CC='cc'").
	//		WithSuggestion("Run with --with-batch to continue without lgrind").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "locate lgrind" or "write run record".
		Operation string

		// Issue links the error to a guide in the catalog. Zero means none.
		Issue Id

		// Resource is the file, directory or command line involved.
		Resource string

		// Suggestions are printed as bullets under the message.
		Suggestions []string

		// Cause is the underlying error.
		Cause error
	}

	// ErrorContext builds an ActionableError incrementally.
	ErrorContext struct {
		issue       Id
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// permissionHint is added to every error whose cause is a permission failure.
const permissionHint = "Check the permissions of the project root and its install tree"

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithContext wraps a filesystem or process error with operation and
// resource context. It returns nil for a nil err.
func WrapWithContext(err error, operation, resource string) error {
	if err == nil {
		return nil
	}
	return NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		Wrap(err).
		BuildError()
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message and its suggestions as bullets. Verbose output
// appends the cause chain, one numbered line per wrapped error.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err.Error())
		}
	}
	return b.String()
}

// Guide returns the catalog guide linked to the error, or nil.
func (e *ActionableError) Guide() *Issue {
	return Get(e.Issue)
}

// WithIssue links the error to a catalog guide.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

// WithOperation sets the operation being performed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the path or command involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one suggestion.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

// WithSuggestions appends several suggestions.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build creates the ActionableError, or nil when no operation was set.
// A permission failure in the cause links the permission guide, replacing
// any guide set earlier, and adds a permissions hint.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}

	ae := &ActionableError{
		Operation:   c.operation,
		Issue:       c.issue,
		Resource:    c.resource,
		Suggestions: append([]string(nil), c.suggestions...),
		Cause:       c.cause,
	}
	if errors.Is(c.cause, fs.ErrPermission) {
		ae.Issue = PermissionDeniedId
		ae.Suggestions = append(ae.Suggestions, permissionHint)
	}
	return ae
}

// BuildError is Build returned as an error; nil stays an untyped nil.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
