// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Command describes an external process invocation.
type Command struct {
	// Dir is the working directory.
	Dir  string
	Name string
	Args []string
	// Stdout receives standard output. Nil discards it.
	Stdout io.Writer
	// Stderr receives standard error. Nil discards it.
	Stderr io.Writer
}

// Executor defines the interface for running external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command and blocks until it exits.
	//
	// A non-zero exit status is returned as an error carrying the tail of the
	// command's combined output.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its standard output.
	Output(ctx context.Context, cmd Command) ([]byte, error)
}
