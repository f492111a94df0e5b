package devserver

import (
	"testing"
	"time"

	"docvault/internal/dto"
	"docvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedDoc(major, minor string, date models.Date, remarks string, tags ...string) Document {
	tagList := make([]models.Tag, 0, len(tags))
	for _, t := range tags {
		tagList = append(tagList, models.Tag{Name: t})
	}

	return Document{
		Meta: models.DocumentMeta{
			MajorHead:    major,
			MinorHead:    minor,
			DocumentDate: date,
			Remarks:      remarks,
			Tags:         tagList,
		},
		FileName:   "file.txt",
		Mime:       "text/plain",
		Content:    []byte("content"),
		UploadedBy: "9999999999",
	}
}

func TestStore_FixedOTPFlow(t *testing.T) {
	t.Parallel()

	s := NewStore("123456")

	assert.Equal(t, "123456", s.IssueOTP("9999999999"))

	token, err := s.RedeemOTP("9999999999", "123456")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	phone, err := s.PhoneByToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "9999999999", phone)
}

func TestStore_RedeemWrongCode(t *testing.T) {
	t.Parallel()

	s := NewStore("123456")
	s.IssueOTP("9999999999")

	_, err := s.RedeemOTP("9999999999", "000000")
	assert.ErrorIs(t, err, models.ErrInvalidOTP)
}

func TestStore_RedeemWithoutIssuedCode(t *testing.T) {
	t.Parallel()

	s := NewStore("123456")

	_, err := s.RedeemOTP("8888888888", "123456")
	assert.ErrorIs(t, err, models.ErrInvalidOTP)
}

func TestStore_CodeIsSingleUse(t *testing.T) {
	t.Parallel()

	s := NewStore("123456")
	s.IssueOTP("9999999999")

	_, err := s.RedeemOTP("9999999999", "123456")
	require.NoError(t, err)

	_, err = s.RedeemOTP("9999999999", "123456")
	assert.ErrorIs(t, err, models.ErrInvalidOTP)
}

func TestStore_RandomCodesAreSixDigits(t *testing.T) {
	t.Parallel()

	s := NewStore("")

	code := s.IssueOTP("9999999999")
	assert.Regexp(t, `^\d{6}$`, code)

	token, err := s.RedeemOTP("9999999999", code)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestStore_PhoneByUnknownToken(t *testing.T) {
	t.Parallel()

	_, err := NewStore("").PhoneByToken("ghost")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestStore_AddDocumentAccumulatesTagCatalogue(t *testing.T) {
	t.Parallel()

	s := NewStore("")

	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 1), "", "invoice", "tax"))
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 2), "", "Invoice", "rent"))

	tags := s.TagsMatching("")
	assert.Equal(t, []models.Tag{{Name: "invoice"}, {Name: "tax"}, {Name: "rent"}}, tags)
}

func TestStore_TagsMatchingTerm(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 1), "", "invoice", "inventory", "rent"))

	assert.Equal(t, []models.Tag{{Name: "invoice"}, {Name: "inventory"}}, s.TagsMatching("INV"))
	assert.Empty(t, s.TagsMatching("payroll"))
}

func TestStore_SearchByCategory(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 1), "personal doc"))
	s.AddDocument(storedDoc(models.MajorProfessional, "HR", models.NewDate(2024, time.March, 1), "hr doc"))

	records := s.Search(dto.SearchDocumentEntryRequest{MajorHead: models.MajorProfessional})
	require.Len(t, records, 1)
	assert.Equal(t, "hr doc", records[0].Remarks)

	records = s.Search(dto.SearchDocumentEntryRequest{MajorHead: models.MajorProfessional, MinorHead: "IT"})
	assert.Empty(t, records)
}

func TestStore_SearchEmptyFilterReturnsEverything(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 1), "a"))
	s.AddDocument(storedDoc(models.MajorProfessional, "HR", models.NewDate(2024, time.March, 2), "b"))

	assert.Len(t, s.Search(dto.SearchDocumentEntryRequest{}), 2)
}

func TestStore_SearchDateRangeIsInclusive(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 1), "first"))
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 15), "mid"))
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 31), "last"))

	records := s.Search(dto.SearchDocumentEntryRequest{
		FromDate: models.NewDate(2024, time.March, 1),
		ToDate:   models.NewDate(2024, time.March, 15),
	})
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Remarks)
	assert.Equal(t, "mid", records[1].Remarks)

	// Open-ended bounds.
	records = s.Search(dto.SearchDocumentEntryRequest{FromDate: models.NewDate(2024, time.March, 16)})
	require.Len(t, records, 1)
	assert.Equal(t, "last", records[0].Remarks)
}

func TestStore_SearchMatchesAnyRequestedTag(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 1), "tax papers", "invoice"))
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 2), "lease", "rent"))
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 3), "untagged"))

	records := s.Search(dto.SearchDocumentEntryRequest{
		Tags: []models.Tag{{Name: "INVOICE"}, {Name: "rent"}},
	})
	require.Len(t, records, 2)
	assert.Equal(t, "tax papers", records[0].Remarks)
	assert.Equal(t, "lease", records[1].Remarks)
}

func TestStore_SearchFreeTextOverRemarksAndFileName(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 1), "quarterly tax report"))

	other := storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 2), "misc")
	other.FileName = "tax-scan.pdf"
	s.AddDocument(other)

	assert.Len(t, s.Search(dto.SearchDocumentEntryRequest{Search: dto.SearchQuery{Value: "tax"}}), 2)
	assert.Len(t, s.Search(dto.SearchDocumentEntryRequest{Search: dto.SearchQuery{Value: "quarterly"}}), 1)
	assert.Empty(t, s.Search(dto.SearchDocumentEntryRequest{Search: dto.SearchQuery{Value: "payroll"}}))
}

func TestStore_SearchPaging(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	for i := 1; i <= 5; i++ {
		s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, i), "doc"))
	}

	page := s.Search(dto.SearchDocumentEntryRequest{Start: 1, Length: 2})
	assert.Len(t, page, 2)

	tail := s.Search(dto.SearchDocumentEntryRequest{Start: 4, Length: 10})
	assert.Len(t, tail, 1)

	past := s.Search(dto.SearchDocumentEntryRequest{Start: 99, Length: 10})
	assert.Empty(t, past)

	all := s.Search(dto.SearchDocumentEntryRequest{Start: 0, Length: 0})
	assert.Len(t, all, 5)
}

func TestStore_FileByID(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	id := s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 1), "doc"))

	doc, ok := s.FileByID(id)
	assert.True(t, ok)
	assert.Equal(t, "content", string(doc.Content))

	_, ok = s.FileByID("ghost")
	assert.False(t, ok)
}

func TestStore_SearchRecordCarriesFileURL(t *testing.T) {
	t.Parallel()

	s := NewStore("")
	id := s.AddDocument(storedDoc(models.MajorPersonal, "Tom", models.NewDate(2024, time.March, 1), "doc"))

	records := s.Search(dto.SearchDocumentEntryRequest{})
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, "/file/"+id, records[0].FileURL)
	assert.Equal(t, "9999999999", records[0].UploadedBy)
}
