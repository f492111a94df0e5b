package devserver

import (
	"docvault/internal/dto"
	"docvault/internal/models"
)

const pkg = "devServer/"

type OTPIssuer interface {
	IssueOTP(phone string) string
}

type SessionCreator interface {
	RedeemOTP(phone string, code string) (string, error)
}

type SessionProvider interface {
	PhoneByToken(token string) (string, error)
}

type DocumentAdder interface {
	AddDocument(doc Document) string
}

type TagLister interface {
	TagsMatching(term string) []models.Tag
}

type DocumentSearcher interface {
	Search(req dto.SearchDocumentEntryRequest) []models.DocumentRecord
}

type FileProvider interface {
	FileByID(id string) (Document, bool)
}
