// Package notebook implements the notebook document model (nbformat 4.5) and
// creation of new documents inside the vault. Created documents are the
// minimal skeleton the external converter accepts: an empty cell sequence,
// placeholder kernel and language metadata and fixed format version markers.
package notebook

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// Extension is the file extension of notebook documents.
	Extension = ".ipynb"

	// FormatMajor is the nbformat major version written to new documents.
	FormatMajor = 4

	// FormatMinor is the nbformat minor version written to new documents.
	FormatMinor = 5

	// CellTypeCode is the cell type marker for code cells.
	CellTypeCode = "code"

	// CellTypeMarkdown is the cell type marker for markdown cells.
	CellTypeMarkdown = "markdown"
)

// Document is a notebook document as persisted on disk.
type Document struct {
	Cells         []Cell       `json:"cells"`
	Metadata      DocumentMeta `json:"metadata"`
	NBFormat      int          `json:"nbformat"`
	NBFormatMinor int          `json:"nbformat_minor"`
}

// Cell is a single notebook cell. Code cells carry an output sequence and an
// execution count (null until executed); both fields are absent on all other
// cell types.
type Cell struct {
	ID             string            `json:"id"`
	CellType       string            `json:"cell_type"`
	Metadata       map[string]any    `json:"metadata"`
	Source         []string          `json:"source"`
	Outputs        *[]map[string]any `json:"outputs,omitempty"`
	ExecutionCount json.RawMessage   `json:"execution_count,omitempty"`
}

// DocumentMeta is the document-level notebook metadata.
type DocumentMeta struct {
	Kernelspec   Kernelspec   `json:"kernelspec"`
	LanguageInfo LanguageInfo `json:"language_info"`
}

// Kernelspec is the kernel placeholder metadata of a document.
type Kernelspec struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
	Name        string `json:"name"`
}

// LanguageInfo is the language placeholder metadata of a document.
type LanguageInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Skeleton returns a pointer to a new minimal [Document], with the given
// number of empty code cells appended.
func Skeleton(cells int) *Document {
	doc := &Document{
		Cells: []Cell{},
		Metadata: DocumentMeta{
			Kernelspec: Kernelspec{
				DisplayName: "Python 3",
				Language:    "python",
				Name:        "python3",
			},
			LanguageInfo: LanguageInfo{
				Name: "python",
			},
		},
		NBFormat:      FormatMajor,
		NBFormatMinor: FormatMinor,
	}

	for range cells {
		doc.Cells = append(doc.Cells, NewCell(CellTypeCode))
	}

	return doc
}

// NewCell returns an empty [Cell] of the given type, with a fresh unique id.
func NewCell(cellType string) Cell {
	cell := Cell{
		ID:       uuid.NewString(),
		CellType: cellType,
		Metadata: map[string]any{},
		Source:   []string{},
	}

	if cellType == CellTypeCode {
		cell.Outputs = &[]map[string]any{}
		cell.ExecutionCount = json.RawMessage("null")
	}

	return cell
}

// DefaultBasename returns the timestamped default filename for a new
// notebook.
func DefaultBasename(t time.Time) string {
	return "Untitled-" + t.Format("20060102-150405") + Extension
}

// Marshal serializes a [Document] in the indented on-disk form.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", " ")
	if err != nil {
		return nil, fmt.Errorf("(notebook-marshal) %w", err)
	}

	return append(data, '\n'), nil
}

// Parse deserializes a [Document] from its on-disk form.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("(notebook-parse) %w: %w", ErrBadDocument, err)
	}

	return &doc, nil
}
