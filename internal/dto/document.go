// Package dto holds the wire contract of the document-management API.
// Responses always carry a success flag; message is the human-readable
// rejection or notice text.
package dto

import (
	"docvault/internal/models"
)

// TokenHeader names the header carrying the bearer token on authenticated
// requests. The API uses a bare "token" header, not Authorization.
const TokenHeader = "token"

// MultipartFileField and MultipartDataField name the two parts of an
// upload: the raw file and the JSON metadata blob.
const (
	MultipartFileField = "file"
	MultipartDataField = "data"
)

type GenerateOTPRequest struct {
	MobileNumber string `json:"mobile_number"`
}

type ValidateOTPRequest struct {
	MobileNumber string `json:"mobile_number"`
	OTP          string `json:"otp"`
}

type ValidateOTPResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatusResponse is the envelope of endpoints that return no payload.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type DocumentTagsRequest struct {
	Term string `json:"term"`
}

type DocumentTagsResponse struct {
	Success bool         `json:"success"`
	Data    []models.Tag `json:"data"`
	Message string       `json:"message,omitempty"`
}

type SearchQuery struct {
	Value string `json:"value"`
}

// SearchDocumentEntryRequest is posted verbatim; start, length, filterId
// and search are pass-through fields the backend may ignore.
type SearchDocumentEntryRequest struct {
	MajorHead  string       `json:"major_head"`
	MinorHead  string       `json:"minor_head"`
	FromDate   models.Date  `json:"from_date"`
	ToDate     models.Date  `json:"to_date"`
	Tags       []models.Tag `json:"tags"`
	UploadedBy string       `json:"uploaded_by"`
	Start      int          `json:"start"`
	Length     int          `json:"length"`
	FilterID   string       `json:"filterId"`
	Search     SearchQuery  `json:"search"`
}

type SearchDocumentEntryResponse struct {
	Success bool                    `json:"success"`
	Data    []models.DocumentRecord `json:"data"`
	Message string                  `json:"message,omitempty"`
}
