package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/chlog/internal/conventional"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/ariel-frischer/chlog/internal/normalize"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [message]",
	Short: "Show the changelog subject a commit message produces",
	Long: `Run a single commit message through the same cleaning step used by
generate and print the resulting subject.

The message is read from the argument, or from stdin when omitted. Exits with
code 1 when the entry would be dropped because no subject can be recovered.`,
	Example: `  chlog normalize "feat(core)!: improve speed (#9)"
  git log -1 --format=%B | chlog normalize`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, err := readMessage(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		_, body := git.SplitMessage(message)
		commit := git.Commit{Text: message, BodyText: body}

		entry, ok := normalize.NewSession().Process(conventional.EntryFromCommit("", message), commit)
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "dropped: no subject in header, body or message")
			return NewExitError(ExitValidationFailed)
		}

		fmt.Fprintln(cmd.OutOrStdout(), entry.Subject)
		return nil
	},
}

func init() {
	normalizeCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(normalizeCmd)
}

func readMessage(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", clierrors.Wrap(err, clierrors.Argument, "reading commit message from stdin")
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", clierrors.NewArgumentErrorWithUsage("no commit message given",
			"chlog normalize <message>  or  <cmd> | chlog normalize")
	}
	return string(data), nil
}
