package devserver

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"docvault/internal/dto"
	"docvault/internal/models"

	uuid "github.com/satori/go.uuid"
)

// Store is the in-memory state behind the mock backend: pending one-time
// codes, live sessions, stored documents and the accumulated tag catalogue.
type Store struct {
	mu       sync.RWMutex
	fixedOTP string
	otps     map[string]string
	sessions map[string]string
	docs     []Document
	tags     *models.TagSet
}

// NewStore builds an empty store. A non-empty fixedOTP is accepted for
// every phone number, which keeps logins deterministic in development and
// tests.
func NewStore(fixedOTP string) *Store {
	return &Store{
		fixedOTP: fixedOTP,
		otps:     make(map[string]string),
		sessions: make(map[string]string),
		tags:     models.NewTagSet(),
	}
}

// IssueOTP records a pending code for the phone number and returns it.
func (s *Store) IssueOTP(phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.fixedOTP
	if code == "" {
		code = randomCode()
	}

	s.otps[phone] = code

	return code
}

// RedeemOTP exchanges a pending code for a session token. The code is
// single-use; a successful redemption clears it.
func (s *Store) RedeemOTP(phone string, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.otps[phone]
	if !ok || pending != code {
		return "", models.ErrInvalidOTP
	}

	delete(s.otps, phone)

	token := uuid.NewV4().String()
	s.sessions[token] = phone

	return token, nil
}

func (s *Store) PhoneByToken(token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	phone, ok := s.sessions[token]
	if !ok {
		return "", models.ErrSessionNotFound
	}

	return phone, nil
}

// AddDocument stores the upload, merges its tags into the catalogue and
// returns the assigned identifier.
func (s *Store) AddDocument(doc Document) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.ID = uuid.NewV4().String()
	s.docs = append(s.docs, doc)

	for _, tag := range doc.Meta.Tags {
		s.tags.Add(tag.Name)
	}

	return doc.ID
}

// TagsMatching lists catalogue tags containing term, case-insensitively.
// An empty term lists the whole catalogue.
func (s *Store) TagsMatching(term string) []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]models.Tag, 0)

	for _, name := range s.tags.Names() {
		if term == "" || strings.Contains(strings.ToLower(name), term) {
			out = append(out, models.Tag{Name: name})
		}
	}

	return out
}

// Search applies the filter the way the real backend would: equality on
// categories and uploader, inclusive date range, any-of tag match,
// substring match for the free-text value, then start/length paging.
func (s *Store) Search(req dto.SearchDocumentEntryRequest) []models.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.DocumentRecord, 0)

	for _, doc := range s.docs {
		if req.MajorHead != "" && doc.Meta.MajorHead != req.MajorHead {
			continue
		}

		if req.MinorHead != "" && doc.Meta.MinorHead != req.MinorHead {
			continue
		}

		if req.UploadedBy != "" && doc.UploadedBy != req.UploadedBy {
			continue
		}

		if !req.FromDate.IsZero() && doc.Meta.DocumentDate.Before(req.FromDate) {
			continue
		}

		if !req.ToDate.IsZero() && doc.Meta.DocumentDate.After(req.ToDate) {
			continue
		}

		if len(req.Tags) > 0 && !hasAnyTag(doc.Meta.Tags, req.Tags) {
			continue
		}

		if req.Search.Value != "" && !matchesText(doc, req.Search.Value) {
			continue
		}

		matched = append(matched, doc.Record())
	}

	lo, hi := pageBounds(req.Start, req.Length, len(matched))

	return matched[lo:hi]
}

func (s *Store) FileByID(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.ID == id {
			return doc, true
		}
	}

	return Document{}, false
}

func hasAnyTag(have []models.Tag, want []models.Tag) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h.Name, w.Name) {
				return true
			}
		}
	}

	return false
}

func matchesText(doc Document, value string) bool {
	value = strings.ToLower(value)

	return strings.Contains(strings.ToLower(doc.Meta.Remarks), value) ||
		strings.Contains(strings.ToLower(doc.FileName), value)
}

// pageBounds clamps a start/length window to the result size. A length of
// zero or less means "no limit" and returns everything past start.
func pageBounds(start int, length int, total int) (int, int) {
	if start < 0 {
		start = 0
	}

	if start > total {
		start = total
	}

	if length <= 0 {
		return start, total
	}

	end := start + length
	if end > total {
		end = total
	}

	return start, end
}

func randomCode() string {
	u := uuid.NewV4()

	return fmt.Sprintf("%06d", binary.BigEndian.Uint32(u.Bytes()[:4])%1000000)
}
