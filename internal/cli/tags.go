package cli

import (
	"github.com/spf13/cobra"
)

func newTagsCmd(sh *shell) *cobra.Command {
	var term string

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List known tags",
		Long: `Tags lists the tags the service already knows, optionally narrowed
to those containing a term. The list is a suggestion aid; uploads may
use tags that are not on it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sh.requireSession(); err != nil {
				return err
			}

			tags, err := sh.app.Documents.DocumentTags(cmd.Context(), term)
			if err != nil {
				return err
			}

			if len(tags) == 0 {
				sh.printf("no tags found\n")
				return nil
			}

			for _, tag := range tags {
				sh.printf("%s\n", tag.Name)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "only list tags containing this term")

	return cmd
}
