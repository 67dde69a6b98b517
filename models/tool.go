package models

import (
	"fmt"
	"time"
)

// TransportKind distinguishes how a tool server is reached.
type TransportKind string

const (
	TransportLocalCommand TransportKind = "local-command"
	TransportRemoteHTTP   TransportKind = "remote-http"
)

// LocalCommand describes a tool server started as a child process and
// spoken to over stdio.
type LocalCommand struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// RemoteHTTP describes a tool server reached over streamable HTTP.
type RemoteHTTP struct {
	URL string `json:"url"`
}

// ToolDescriptor declares one external capability: how to reach it, what it
// needs from the environment, and how long a call may take. Descriptors are
// created once at startup and read-only thereafter.
type ToolDescriptor struct {
	Name                string            `json:"name"`
	Local               *LocalCommand     `json:"local,omitempty"`
	Remote              *RemoteHTTP       `json:"remote,omitempty"`
	Env                 map[string]string `json:"-"`
	RequiredCredentials []string          `json:"requiredCredentials,omitempty"`
	Timeout             time.Duration     `json:"timeout"`
}

// Kind reports the transport variant. Exactly one of Local or Remote must
// be set.
func (d ToolDescriptor) Kind() (TransportKind, error) {
	switch {
	case d.Local != nil && d.Remote != nil:
		return "", fmt.Errorf("tool %q declares both local and remote transports", d.Name)
	case d.Local != nil:
		return TransportLocalCommand, nil
	case d.Remote != nil:
		return TransportRemoteHTTP, nil
	default:
		return "", fmt.Errorf("tool %q declares no transport", d.Name)
	}
}
