package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"docvault/internal/dto"
	"docvault/internal/models"
)

func GenerateOTP(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, otps OTPIssuer) {
	op := pkg + "GenerateOTP"

	log = log.With(slog.String("op", op))

	var req dto.GenerateOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", slog.String("error", err.Error()))
		writeError(log, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := models.ValidatePhone(req.MobileNumber); err != nil {
		log.Warn("invalid mobile number", slog.String("error", err.Error()))
		writeRejection(log, w, err.Error())
		return
	}

	code := otps.IssueOTP(req.MobileNumber)

	// The code never travels in the response; development reads it here.
	log.Info("issued one-time code",
		slog.String("phone", req.MobileNumber),
		slog.String("code", code),
	)

	writeJSON(log, w, http.StatusOK, dto.StatusResponse{Success: true, Message: "one-time code sent"})
}

func ValidateOTP(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, sessions SessionCreator) {
	op := pkg + "ValidateOTP"

	log = log.With(slog.String("op", op))

	var req dto.ValidateOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", slog.String("error", err.Error()))
		writeError(log, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := models.ValidatePhone(req.MobileNumber); err != nil {
		log.Warn("invalid mobile number", slog.String("error", err.Error()))
		writeRejection(log, w, err.Error())
		return
	}

	token, err := sessions.RedeemOTP(req.MobileNumber, req.OTP)
	if err != nil {
		log.Warn("failed to redeem code",
			slog.String("phone", req.MobileNumber),
			slog.String("error", err.Error()),
		)
		writeRejection(log, w, "incorrect one-time code")
		return
	}

	writeJSON(log, w, http.StatusOK, dto.ValidateOTPResponse{Success: true, Token: token})
}

func SaveDocumentEntry(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docs DocumentAdder) {
	op := pkg + "SaveDocumentEntry"

	log = log.With(slog.String("op", op))

	phone, ok := PhoneFrom(ctx)
	if !ok {
		log.Error("no identity on authenticated route")
		writeError(log, w, http.StatusForbidden, "token is invalid")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		log.Warn("failed to parse multipart form", slog.String("error", err.Error()))
		writeError(log, w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	var meta models.DocumentMeta

	if err := json.Unmarshal([]byte(r.FormValue(dto.MultipartDataField)), &meta); err != nil {
		log.Warn("failed to unmarshal metadata", slog.String("error", err.Error()))
		writeError(log, w, http.StatusBadRequest, "invalid metadata json")
		return
	}

	if !models.ValidMajorHead(meta.MajorHead) {
		writeRejection(log, w, fmt.Sprintf("unknown major head %q", meta.MajorHead))
		return
	}

	if !models.ValidMinorHead(meta.MajorHead, meta.MinorHead) {
		writeRejection(log, w, fmt.Sprintf("unknown minor head %q under %q", meta.MinorHead, meta.MajorHead))
		return
	}

	if meta.DocumentDate.IsZero() {
		writeRejection(log, w, "a document date is required")
		return
	}

	file, header, err := r.FormFile(dto.MultipartFileField)
	if err != nil {
		log.Warn("missing file part", slog.String("error", err.Error()))
		writeError(log, w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read file", slog.String("error", err.Error()))
		writeError(log, w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if meta.UploadedBy == "" {
		meta.UploadedBy = phone
	}

	id := docs.AddDocument(Document{
		Meta:       meta,
		FileName:   header.Filename,
		Mime:       header.Header.Get("Content-Type"),
		Content:    content,
		UploadedBy: meta.UploadedBy,
	})

	log.Debug("document stored", slog.String("id", id))

	writeJSON(log, w, http.StatusOK, dto.StatusResponse{Success: true, Message: "document saved"})
}

func DocumentTags(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, tags TagLister) {
	op := pkg + "DocumentTags"

	log = log.With(slog.String("op", op))

	var req dto.DocumentTagsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", slog.String("error", err.Error()))
		writeError(log, w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(log, w, http.StatusOK, dto.DocumentTagsResponse{
		Success: true,
		Data:    tags.TagsMatching(req.Term),
	})
}

func SearchDocumentEntry(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docs DocumentSearcher) {
	op := pkg + "SearchDocumentEntry"

	log = log.With(slog.String("op", op))

	var req dto.SearchDocumentEntryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", slog.String("error", err.Error()))
		writeError(log, w, http.StatusBadRequest, "invalid request body")
		return
	}

	records := docs.Search(req)

	log.Debug("search handled", slog.Int("count", len(records)))

	writeJSON(log, w, http.StatusOK, dto.SearchDocumentEntryResponse{
		Success: true,
		Data:    records,
	})
}

func FileByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, id string, files FileProvider) {
	op := pkg + "FileByID"

	log = log.With(slog.String("op", op))

	doc, ok := files.FileByID(id)
	if !ok {
		log.Warn("document not found", slog.String("id", id))
		writeError(log, w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
		return
	}

	mime := doc.Mime
	if mime == "" {
		mime = "application/octet-stream"
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))

	if _, err := w.Write(doc.Content); err != nil {
		log.Error("failed to write file", slog.String("error", err.Error()))
	}
}
