package wordpool

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/storage"
)

// Service serves the active list of candidate board words.
// It starts out with the compiled-in default list.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu    sync.RWMutex
	words []string
}

// New creates a word pool seeded with model.DefaultWords
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		words:   Normalize(model.DefaultWords),
	}
}

// Words returns a copy of the active word list
func (s *Service) Words() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Count returns the number of words in the active list
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// LoadWords replaces the active list. The words are normalized first and the
// load is rejected if fewer than a board's worth remain.
func (s *Service) LoadWords(words []string) error {
	normalized := Normalize(words)
	if len(normalized) < model.BoardSize {
		return fmt.Errorf("%w: got %d, need %d", model.ErrWordPoolTooSmall, len(normalized), model.BoardSize)
	}

	s.mu.Lock()
	s.words = normalized
	s.mu.Unlock()
	return nil
}

// LoadFromStorage replaces the active list with the one held in storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetWords(ctx)
	if err != nil {
		return err
	}
	if err := s.LoadWords(words); err != nil {
		return err
	}
	s.logger.Info("word pool loaded from storage", slog.Int("count", s.Count()))
	return nil
}

// LoadFromFile loads a newline-delimited word list and saves it to storage.
// Blank lines and lines starting with # are skipped.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open word list: %w", err)
	}
	defer file.Close()

	words, err := ReadWords(file)
	if err != nil {
		return fmt.Errorf("read word list: %w", err)
	}
	if err := s.LoadWords(words); err != nil {
		return err
	}

	active := s.Words()
	if err := s.storage.SaveWords(ctx, active); err != nil {
		return fmt.Errorf("save word list: %w", err)
	}

	s.logger.Info("word pool loaded from file",
		slog.String("path", path),
		slog.Int("count", len(active)),
	)
	return nil
}

// ReadWords reads one word per line, skipping blanks and # comments
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Normalize upper-cases and trims every word, dropping blanks and duplicates.
// The first occurrence of each word keeps its position.
func Normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
