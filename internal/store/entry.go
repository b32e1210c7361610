package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	herrors "github.com/setia/htmldicts/internal/errors"
)

// maxEntryLine bounds one JSON Lines record.
const maxEntryLine = 4 * 1024 * 1024

// Entry is one dictionary entry as stored in the index.
type Entry struct {
	ID              string `json:"id"`
	Term            string `json:"term"`
	Definition      string `json:"definition"`
	Source          string `json:"source"`
	ExpandedContext string `json:"expanded_context,omitempty"`
	FullContext     string `json:"full_context,omitempty"`
}

// LoadEntries reads JSON Lines entries from r. Blank lines are skipped. An
// entry without an ID gets "<source>#<line>".
func LoadEntries(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxEntryLine)

	var entries []Entry
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var e Entry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return nil, herrors.New(herrors.ErrCodeEntryParse,
				fmt.Sprintf("invalid entry on line %d", line), err).
				WithDetail("line", fmt.Sprint(line))
		}
		if strings.TrimSpace(e.Term) == "" {
			return nil, herrors.New(herrors.ErrCodeEntryParse,
				fmt.Sprintf("entry on line %d has no term", line), nil).
				WithDetail("line", fmt.Sprint(line))
		}
		if e.ID == "" {
			e.ID = fmt.Sprintf("%s#%d", e.Source, line)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeEntryParse, err)
	}
	return entries, nil
}

// LoadEntriesFile reads JSON Lines entries from path.
func LoadEntriesFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, herrors.New(herrors.ErrCodeFileNotFound,
				fmt.Sprintf("entries file not found: %s", path), err)
		}
		return nil, herrors.Wrap(herrors.ErrCodeFileNotFound, err)
	}
	defer func() { _ = f.Close() }()

	return LoadEntries(f)
}

func (e Entry) document() map[string]any {
	doc := map[string]any{
		fieldTerm:       e.Term,
		fieldDefinition: e.Definition,
		fieldSource:     e.Source,
	}
	if e.ExpandedContext != "" {
		doc[fieldExpandedContext] = e.ExpandedContext
	}
	if e.FullContext != "" {
		doc[fieldFullContext] = e.FullContext
	}
	return doc
}
