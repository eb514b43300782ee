// Package models defines the data objects shared across lazystatus packages.
package models

// RepoInfo summarizes the repository shown in the status header.
type RepoInfo struct {
	Root        string
	Branch      string
	Ahead       int
	Behind      int
	HasUpstream bool
	Staged      int
	Modified    int
	Untracked   int
}

const (
	// MessageHistoryFilename stores past commit messages for the commit prompt.
	MessageHistoryFilename = ".message-history.json"
)
