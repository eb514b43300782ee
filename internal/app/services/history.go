package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazystatus/internal/models"
)

const (
	defaultFilePerms = 0o600
	defaultDirPerms  = 0o750

	// messageHistoryLimit caps how many commit messages are kept per repository.
	messageHistoryLimit = 50
)

// HistoryService persists commit message history per repository under the
// state directory. Messages are offered as shell-style history in the commit
// prompt.
type HistoryService struct {
	StateDir string
}

// NewHistoryService creates a HistoryService rooted at the default state
// directory. The directory is created lazily on first save.
func NewHistoryService() *HistoryService {
	dir, err := StateDir()
	if err != nil {
		return &HistoryService{}
	}
	return &HistoryService{StateDir: dir}
}

// StateDir returns the per-user state directory, honouring XDG_STATE_HOME.
func StateDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lazystatus"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "lazystatus"), nil
}

// LoadMessages returns the stored commit messages for the repository, most
// recent first. Missing or unreadable files yield an empty history.
func (h *HistoryService) LoadMessages(repoKey string) []string {
	messages, _ := LoadMessageHistory(repoKey, h.StateDir)
	return messages
}

// RecordMessage stores a commit message at the front of the repository
// history, deduplicating prior uses.
func (h *HistoryService) RecordMessage(repoKey, message string) error {
	messages, err := LoadMessageHistory(repoKey, h.StateDir)
	if err != nil {
		messages = nil
	}
	return SaveMessageHistory(repoKey, h.StateDir, AddMessage(messages, message))
}

// LoadMessageHistory loads commit message history from file.
func LoadMessageHistory(repoKey, stateDir string) ([]string, error) {
	if repoKey == "" || stateDir == "" {
		return []string{}, nil
	}
	historyPath := filepath.Join(stateDir, repoKey, models.MessageHistoryFilename)
	// #nosec G304 -- historyPath is constructed from vetted directory and constant filename
	data, err := os.ReadFile(historyPath)
	if err != nil {
		return []string{}, nil
	}

	var payload struct {
		Messages []string `json:"messages"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return []string{}, err
	}
	if payload.Messages == nil {
		return []string{}, nil
	}
	return payload.Messages, nil
}

// SaveMessageHistory saves commit message history to file.
func SaveMessageHistory(repoKey, stateDir string, messages []string) error {
	if repoKey == "" || stateDir == "" {
		return nil
	}
	historyPath := filepath.Join(stateDir, repoKey, models.MessageHistoryFilename)
	if err := os.MkdirAll(filepath.Dir(historyPath), defaultDirPerms); err != nil {
		return err
	}

	historyData := struct {
		Messages []string `json:"messages"`
	}{
		Messages: messages,
	}
	data, err := json.Marshal(historyData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(historyPath, data, defaultFilePerms); err != nil {
		return err
	}
	return nil
}

// AddMessage prepends a message to the history, removing earlier duplicates
// and trimming to the history limit. Blank messages are ignored.
func AddMessage(messages []string, message string) []string {
	message = strings.TrimSpace(message)
	if message == "" {
		return messages
	}
	out := make([]string, 0, len(messages)+1)
	out = append(out, message)
	for _, m := range messages {
		if m == message {
			continue
		}
		out = append(out, m)
	}
	if len(out) > messageHistoryLimit {
		out = out[:messageHistoryLimit]
	}
	return out
}
