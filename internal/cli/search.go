package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"docvault/internal/models"

	"github.com/spf13/cobra"
)

func newSearchCmd(sh *shell) *cobra.Command {
	var (
		major    string
		minor    string
		from     string
		to       string
		tags     []string
		uploader string
		text     string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search stored documents",
		Long: `Search sends the filter to the service verbatim and prints whatever
comes back. Every filter is optional; an empty filter lists what the
server chooses to return.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := pkg + "Search"

			log := sh.app.Log.With(slog.String("op", op))

			if err := sh.requireSession(); err != nil {
				return err
			}

			form := models.NewSearchForm()
			form.SetMajorHead(major)
			form.MinorHead = minor
			form.UploadedBy = uploader
			form.Search = text

			for _, tag := range tags {
				form.AddTag(tag)
			}

			var err error

			form.FromDate, err = models.ParseDate(from)
			if err != nil {
				return err
			}

			form.ToDate, err = models.ParseDate(to)
			if err != nil {
				return err
			}

			if err := form.Validate(); err != nil {
				return err
			}

			records, err := sh.app.Documents.SearchDocumentEntry(cmd.Context(), form.Criteria())
			if err != nil {
				return err
			}

			log.Debug("search finished", slog.Int("count", len(records)))

			if len(records) == 0 {
				sh.printf("no documents found\n")
				return nil
			}

			w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "REF\tDATE\tCATEGORY\tFILE\tREMARKS\tTAGS")

			for i, record := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					record.Ref(i),
					record.DocumentDate,
					record.MajorHead+"/"+record.MinorHead,
					record.FileName,
					record.Remarks,
					joinTags(record.Tags),
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&major, "major", "", "major category filter")
	cmd.Flags().StringVar(&minor, "minor", "", "minor category filter (requires --major)")
	cmd.Flags().StringVar(&from, "from", "", "earliest document date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "latest document date, YYYY-MM-DD")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag filter (repeatable, matches any)")
	cmd.Flags().StringVar(&uploader, "uploader", "", "uploader filter")
	cmd.Flags().StringVar(&text, "text", "", "free-text search value")

	return cmd
}

func joinTags(tags []models.Tag) string {
	names := make([]string, 0, len(tags))

	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	return strings.Join(names, ",")
}
