package records

import (
	"fmt"
	"time"

	apperrors "github.com/midorigaoka/coop-gateway/internal/errors"
)

// PublishedValue is the publication-state value that makes a record visible
// to members. The upstream query language cannot filter on every field type,
// so this is re-checked after fetch.
const PublishedValue = "公開"

// Field is a single value in an upstream record, tagged with its upstream
// field type.
type Field struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Record is one raw upstream record, keyed by field code.
type Record map[string]Field

// String returns the field value as a string. Missing fields and non-string
// values yield the empty string.
func (r Record) String(code string) string {
	f, ok := r[code]
	if !ok {
		return ""
	}
	s, _ := f.Value.(string)
	return s
}

// RequireString returns the field value as a non-empty string, or a
// RecordShape error naming the missing field.
func (r Record) RequireString(code string) (string, error) {
	s := r.String(code)
	if s == "" {
		return "", apperrors.Wrapf(apperrors.ErrRecordShape, "missing required field %q", code)
	}
	return s, nil
}

// Published reports whether the record's publication-state field allows it to
// be shown to members.
func (r Record) Published(code string) bool {
	return r.String(code) == PublishedValue
}

// Date parses the field as an upstream date value (day granularity).
func (r Record) Date(code string) (time.Time, error) {
	s := r.String(code)
	if s == "" {
		return time.Time{}, apperrors.Wrapf(apperrors.ErrRecordShape, "missing required field %q", code)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, apperrors.Wrapf(apperrors.ErrRecordShape, "field %q is not a date: %v", code, err)
	}
	return t, nil
}

// Attachment is one file entry from an upstream file field.
type Attachment struct {
	FileKey     string `json:"fileKey"`
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Size        string `json:"size,omitempty"`
}

// Attachments returns the file entries of a file field. A missing or empty
// field yields nil rather than an error: an empty attachment list is absent
// in the reshaped output, not a failure.
func (r Record) Attachments(code string) []Attachment {
	f, ok := r[code]
	if !ok {
		return nil
	}
	entries, ok := f.Value.([]any)
	if !ok || len(entries) == 0 {
		return nil
	}

	files := make([]Attachment, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		files = append(files, Attachment{
			FileKey:     stringValue(m["fileKey"]),
			Name:        stringValue(m["name"]),
			ContentType: stringValue(m["contentType"]),
			Size:        stringValue(m["size"]),
		})
	}
	if len(files) == 0 {
		return nil
	}
	return files
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// ID returns the upstream record identifier.
func (r Record) ID() string {
	if id := r.String("$id"); id != "" {
		return id
	}
	// Some queries return the numeric record number instead.
	if f, ok := r["$id"]; ok {
		return fmt.Sprintf("%v", f.Value)
	}
	return ""
}
