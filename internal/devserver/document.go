package devserver

import "docvault/internal/models"

// Document is one stored upload held by the in-memory backend.
type Document struct {
	ID         string
	Meta       models.DocumentMeta
	FileName   string
	Mime       string
	Content    []byte
	UploadedBy string
}

// Record is the shape of this document in search results. File URLs are
// served relative to the API host.
func (d Document) Record() models.DocumentRecord {
	return models.DocumentRecord{
		ID:           d.ID,
		MajorHead:    d.Meta.MajorHead,
		MinorHead:    d.Meta.MinorHead,
		DocumentDate: d.Meta.DocumentDate,
		Remarks:      d.Meta.Remarks,
		Tags:         d.Meta.Tags,
		UploadedBy:   d.UploadedBy,
		FileName:     d.FileName,
		FileURL:      "/file/" + d.ID,
	}
}
