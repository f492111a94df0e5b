package models

import (
	"fmt"
	"strings"
)

const (
	MajorPersonal     = "Personal"
	MajorProfessional = "Professional"
)

var minorsByMajor = map[string][]string{
	MajorPersonal:     {"John", "Tom", "Emily", "Hanna"},
	MajorProfessional: {"Accounts", "HR", "IT", "Finance"},
}

func MajorHeads() []string {
	return []string{MajorPersonal, MajorProfessional}
}

// MinorHeads returns the minor categories available under the given major
// category, or nil when the major category is unknown.
func MinorHeads(major string) []string {
	minors, ok := minorsByMajor[major]
	if !ok {
		return nil
	}

	out := make([]string, len(minors))
	copy(out, minors)

	return out
}

func ValidMajorHead(major string) bool {
	_, ok := minorsByMajor[major]
	return ok
}

func ValidMinorHead(major string, minor string) bool {
	for _, m := range minorsByMajor[major] {
		if m == minor {
			return true
		}
	}

	return false
}

type Tag struct {
	Name string `json:"tag_name"`
}

// TagSet keeps tags in selection order and silently drops duplicates.
// Comparison ignores case and surrounding whitespace.
type TagSet struct {
	names []string
	seen  map[string]struct{}
}

func NewTagSet(names ...string) *TagSet {
	s := &TagSet{seen: make(map[string]struct{})}

	for _, n := range names {
		s.Add(n)
	}

	return s
}

// Add reports whether the tag was actually added.
func (s *TagSet) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	key := strings.ToLower(name)
	if _, ok := s.seen[key]; ok {
		return false
	}

	s.seen[key] = struct{}{}
	s.names = append(s.names, name)

	return true
}

func (s *TagSet) Len() int {
	return len(s.names)
}

func (s *TagSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)

	return out
}

func (s *TagSet) Tags() []Tag {
	out := make([]Tag, 0, len(s.names))

	for _, n := range s.names {
		out = append(out, Tag{Name: n})
	}

	return out
}

// DocumentMeta is the metadata blob attached to an upload.
type DocumentMeta struct {
	MajorHead    string `json:"major_head"`
	MinorHead    string `json:"minor_head"`
	DocumentDate Date   `json:"document_date"`
	Remarks      string `json:"document_remarks"`
	Tags         []Tag  `json:"tags"`
	UploadedBy   string `json:"user_id"`
}

// DocumentRecord is one search result. The backend does not reliably
// return a document identifier, so ID may be empty.
type DocumentRecord struct {
	ID           string `json:"document_id,omitempty"`
	MajorHead    string `json:"major_head"`
	MinorHead    string `json:"minor_head"`
	DocumentDate Date   `json:"document_date"`
	Remarks      string `json:"document_remarks"`
	Tags         []Tag  `json:"tags"`
	UploadedBy   string `json:"uploaded_by"`
	FileName     string `json:"file_name,omitempty"`
	FileURL      string `json:"file_url,omitempty"`
}

// Ref names a record for display, falling back to the position in the
// result list when the backend omitted the identifier.
func (r DocumentRecord) Ref(position int) string {
	if r.ID != "" {
		return r.ID
	}

	return fmt.Sprintf("#%d", position+1)
}

// SearchFilter is sent to the search endpoint verbatim. Start, Length,
// FilterID and Search are pass-through fields; the client drives no
// pagination of its own.
type SearchFilter struct {
	MajorHead  string
	MinorHead  string
	FromDate   Date
	ToDate     Date
	Tags       []Tag
	UploadedBy string
	Search     string
	Start      int
	Length     int
	FilterID   string
}
