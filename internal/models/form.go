package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	otpPattern   = regexp.MustCompile(`^\d{6}$`)
)

func ValidatePhone(phone string) error {
	return validation.Validate(phone,
		validation.Required.Error("a mobile number is required"),
		validation.Match(phonePattern).Error("a mobile number is 10 digits"),
	)
}

func ValidateOTPCode(code string) error {
	return validation.Validate(code,
		validation.Required.Error("a one-time code is required"),
		validation.Match(otpPattern).Error("a one-time code is 6 digits"),
	)
}

// UploadForm is the state of the document entry screen.
type UploadForm struct {
	FilePath     string
	MajorHead    string
	MinorHead    string
	DocumentDate Date
	Remarks      string
	Tags         *TagSet
	UploadedBy   string
}

func NewUploadForm() *UploadForm {
	return &UploadForm{Tags: NewTagSet()}
}

// SetMajorHead switches the major category. Minor categories depend on the
// major one, so a previously selected minor category no longer applies.
func (f *UploadForm) SetMajorHead(major string) {
	if f.MajorHead == major {
		return
	}

	f.MajorHead = major
	f.MinorHead = ""
}

func (f *UploadForm) AddTag(name string) bool {
	return f.Tags.Add(name)
}

func (f *UploadForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.FilePath, validation.Required.Error("a file must be selected")),
		validation.Field(&f.MajorHead,
			validation.Required.Error("a major category is required"),
			validation.In(MajorPersonal, MajorProfessional).Error("unknown major category"),
		),
		validation.Field(&f.MinorHead,
			validation.Required.Error("a minor category is required"),
			validation.By(f.checkMinorHead),
		),
		validation.Field(&f.DocumentDate, validation.By(dateRequired)),
	)
}

func (f *UploadForm) checkMinorHead(value interface{}) error {
	minor, _ := value.(string)
	if minor == "" {
		return nil
	}

	if !ValidMinorHead(f.MajorHead, minor) {
		return invalidMinorHead(f.MajorHead, minor)
	}

	return nil
}

func (f *UploadForm) Meta() DocumentMeta {
	return DocumentMeta{
		MajorHead:    f.MajorHead,
		MinorHead:    f.MinorHead,
		DocumentDate: f.DocumentDate,
		Remarks:      f.Remarks,
		Tags:         f.Tags.Tags(),
		UploadedBy:   f.UploadedBy,
	}
}

// SearchForm is the state of the search screen. Every filter is optional.
type SearchForm struct {
	MajorHead  string
	MinorHead  string
	FromDate   Date
	ToDate     Date
	Tags       *TagSet
	UploadedBy string
	Search     string
}

func NewSearchForm() *SearchForm {
	return &SearchForm{Tags: NewTagSet()}
}

func (f *SearchForm) SetMajorHead(major string) {
	if f.MajorHead == major {
		return
	}

	f.MajorHead = major
	f.MinorHead = ""
}

func (f *SearchForm) AddTag(name string) bool {
	return f.Tags.Add(name)
}

func (f *SearchForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.MajorHead, validation.In(MajorPersonal, MajorProfessional).Error("unknown major category")),
		validation.Field(&f.MinorHead, validation.By(f.checkMinorHead)),
	)
}

func (f *SearchForm) checkMinorHead(value interface{}) error {
	minor, _ := value.(string)
	if minor == "" {
		return nil
	}

	if f.MajorHead == "" {
		return errors.New("a minor category filter requires a major category")
	}

	if !ValidMinorHead(f.MajorHead, minor) {
		return invalidMinorHead(f.MajorHead, minor)
	}

	return nil
}

func (f *SearchForm) Criteria() SearchFilter {
	return SearchFilter{
		MajorHead:  f.MajorHead,
		MinorHead:  f.MinorHead,
		FromDate:   f.FromDate,
		ToDate:     f.ToDate,
		Tags:       f.Tags.Tags(),
		UploadedBy: f.UploadedBy,
		Search:     f.Search,
	}
}

func dateRequired(value interface{}) error {
	d, ok := value.(Date)
	if !ok || d.IsZero() {
		return errors.New("a document date is required")
	}

	return nil
}

// invalidMinorHead names the minor categories that would have been accepted,
// when the major category has any.
func invalidMinorHead(major string, minor string) error {
	minors := MinorHeads(major)
	if len(minors) == 0 {
		return fmt.Errorf("%q is not a minor category of %q", minor, major)
	}

	return fmt.Errorf("%q is not a minor category of %q, expected one of %s",
		minor, major, strings.Join(minors, ", "))
}
