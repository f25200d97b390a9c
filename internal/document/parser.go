// Package document converts uploaded submission attachments into plain text
// so they can run through the same extraction pipeline as pasted bodies.
package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

type Parser struct {
	uploadsDir string
}

type Document struct {
	Filename string
	FileType string
	FileSize int64
	Text     string
}

func NewParser(uploadsDir string) *Parser {
	return &Parser{uploadsDir: uploadsDir}
}

// ParseFile extracts text from PDF/DOCX/TXT submissions. The upload is kept
// on disk under uploadsDir for audit.
func (p *Parser) ParseFile(filename string, reader io.Reader) (*Document, error) {
	filePath := filepath.Join(p.uploadsDir, filepath.Base(filename))
	if err := os.MkdirAll(p.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	fileType := strings.ToLower(filepath.Ext(filename))
	var text string

	switch fileType {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.ConvertPath(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	case ".txt", ".eml":
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(content)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}

	return &Document{
		Filename: filename,
		FileType: fileType,
		FileSize: size,
		Text:     text,
	}, nil
}
