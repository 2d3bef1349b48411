package editor

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ExportFilename is the suggested name for exported documents.
const ExportFilename = "document.md"

var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// ImportFile loads a text file into the session. Files without a known
// markdown extension are accepted with a warning.
func (s *Session) ImportFile(name string, r io.Reader) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !markdownExtensions[ext] {
		s.log.WithField("file", name).Warn("importing a file without a markdown extension")
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", name)
	}

	s.SetContent(string(content))
	return nil
}

// ExportFile writes the current content to w and returns the suggested
// filename.
func (s *Session) ExportFile(w io.Writer) (string, error) {
	_, err := io.WriteString(w, s.Content())
	return ExportFilename, errors.Wrap(err, "could not export document")
}
