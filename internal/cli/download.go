package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"
)

func newDownloadCmd(sh *shell) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <file-url>",
		Short: "Download a stored file",
		Long: `Download fetches one file by the file_url a search result reported.
Relative URLs resolve against the configured API base URL. The transfer
is best-effort; a failed download is reported, not retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := pkg + "Download"

			log := sh.app.Log.With(slog.String("op", op))

			if err := sh.requireSession(); err != nil {
				return err
			}

			fileURL := args[0]

			target := output
			if target == "" {
				target = path.Base(strings.TrimSuffix(fileURL, "/"))
			}

			if target == "" || target == "." || target == "/" {
				return fmt.Errorf("cannot derive a file name from %q, use --output", fileURL)
			}

			dst, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("create %s: %w", target, err)
			}
			defer dst.Close()

			n, err := sh.app.Documents.DownloadFile(cmd.Context(), fileURL, dst)
			if err != nil {
				// A partial file is worse than none.
				os.Remove(target)
				return err
			}

			if err := dst.Close(); err != nil {
				return fmt.Errorf("close %s: %w", target, err)
			}

			log.Debug("file downloaded",
				slog.String("target", target),
				slog.Int64("bytes", n),
			)

			sh.printf("downloaded %s (%d bytes)\n", target, n)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the file to this path")

	return cmd
}
