package cli

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"docvault/internal/models"

	"github.com/spf13/cobra"
)

func newUploadCmd(sh *shell) *cobra.Command {
	var (
		filePath string
		major    string
		minor    string
		date     string
		remarks  string
		tags     []string
		uploader string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a document with metadata",
		Long: fmt.Sprintf(`Upload sends one file together with its metadata: a major category
(%s), a minor category depending on it, the document
date, optional remarks and any number of tags.`,
			strings.Join(models.MajorHeads(), " or ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := pkg + "Upload"

			log := sh.app.Log.With(slog.String("op", op))

			if err := sh.requireSession(); err != nil {
				return err
			}

			form := models.NewUploadForm()
			form.FilePath = filePath
			form.SetMajorHead(major)
			form.MinorHead = minor
			form.Remarks = remarks
			form.UploadedBy = uploader

			for _, tag := range tags {
				form.AddTag(tag)
			}

			parsed, err := models.ParseDate(date)
			if err != nil {
				return err
			}
			form.DocumentDate = parsed

			if err := form.Validate(); err != nil {
				return err
			}

			file, err := os.Open(form.FilePath)
			if err != nil {
				return fmt.Errorf("open %s: %w", form.FilePath, err)
			}
			defer file.Close()

			fileName := filepath.Base(form.FilePath)

			mimeType := mime.TypeByExtension(filepath.Ext(fileName))
			if mimeType == "" {
				mimeType = "application/octet-stream"
			}

			err = sh.app.Documents.SaveDocumentEntry(cmd.Context(), file, fileName, mimeType, form.Meta())
			if err != nil {
				return err
			}

			log.Debug("document uploaded",
				slog.String("file", fileName),
				slog.Int("tags", form.Tags.Len()),
			)

			sh.printf("uploaded %s\n", fileName)

			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "path of the file to upload")
	cmd.Flags().StringVar(&major, "major", "", "major category")
	cmd.Flags().StringVar(&minor, "minor", "", "minor category under the major one")
	cmd.Flags().StringVar(&date, "date", "", "document date, YYYY-MM-DD")
	cmd.Flags().StringVar(&remarks, "remarks", "", "free-form remarks")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag to attach (repeatable)")
	cmd.Flags().StringVar(&uploader, "uploader", "", "uploader identity (server derives it from the session when omitted)")

	return cmd
}
