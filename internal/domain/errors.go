package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrUnsupportedList indicates the list kind has no provider implementation
	ErrUnsupportedList = errors.New("list kind is not supported")

	// ErrMissingUser indicates no user was given on the command line or in the config
	ErrMissingUser = errors.New("no user configured, pass --user or save one with --save")

	// ErrKeyNotFound indicates a store has no value for the requested key
	ErrKeyNotFound = errors.New("key not found")

	// ErrNetwork indicates the remote list could not be reached
	ErrNetwork = errors.New("remote list is unreachable")

	// ErrProviderDecode indicates a page of the remote list was malformed
	ErrProviderDecode = errors.New("remote list page is malformed")
)

// ArgumentError is returned for unknown command-line arguments
type ArgumentError struct {
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("invalid arguments: %s. Use --help to see all options", e.Reason)
	}
	if e.Reason != "" {
		return fmt.Sprintf("invalid argument %s: %s. Use --help to see all options", e.Arg, e.Reason)
	}
	return fmt.Sprintf("unknown argument %s. Use --help to see all options", e.Arg)
}

// ListKindError is returned when a list kind string is not recognized
type ListKindError struct {
	Value string
}

func (e *ListKindError) Error() string {
	return fmt.Sprintf("unknown list type %q, allowed values: manga, anime", e.Value)
}

// SortError is returned when a sort direction string is not recognized
type SortError struct {
	Value string
}

func (e *SortError) Error() string {
	return fmt.Sprintf("unknown sort direction %q, allowed values: asc, desc", e.Value)
}

// FileOp names the file operation that failed
type FileOp string

const (
	FileOpOpen   FileOp = "open"
	FileOpRead   FileOp = "read"
	FileOpWrite  FileOp = "write"
	FileOpDecode FileOp = "decode"
	FileOpEncode FileOp = "encode"
)

// FileError records a failed interaction with a local file or database
type FileError struct {
	Op   FileOp
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ProviderError wraps a failed page request. Kind is ErrNetwork or ErrProviderDecode.
type ProviderError struct {
	Kind   error
	Offset int
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%v (offset %d): %v", e.Kind, e.Offset, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
