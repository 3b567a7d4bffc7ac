// Package transcript persists per-run debugging transcripts. This is
// observability only: the conversation itself stays in-memory and is
// discarded when a run returns.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harunnryd/tachi/internal/model/contract"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
)

const indexName = "index.txt"

type Store struct {
	dir  string
	lock *flock.Flock
}

// NewStore creates the transcript directory if needed and prepares the
// advisory lock guarding the shared index file.
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("transcript dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}

	return &Store{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, "index.lock")),
	}, nil
}

// Save writes one run's transcript atomically and appends a line to the
// index under the file lock, so concurrent runs interleave safely.
func (s *Store) Save(runID string, history []contract.Message, result string) error {
	path := filepath.Join(s.dir, runID+".txt")
	if err := atomic.WriteFile(path, strings.NewReader(render(runID, history, result))); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock transcript index: %w", err)
	}
	defer s.lock.Unlock()

	return s.appendIndex(runID)
}

func (s *Store) appendIndex(runID string) error {
	f, err := os.OpenFile(filepath.Join(s.dir, indexName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transcript index: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s\t%s\n", runID, time.Now().Format(time.RFC3339))
	return err
}

func render(runID string, history []contract.Message, result string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "run: %s\n", runID)
	for _, m := range history {
		fmt.Fprintf(&sb, "\n[%s]\n%s\n", m.Role, m.Content)
	}
	fmt.Fprintf(&sb, "\n[result]\n%s\n", result)
	return sb.String()
}
