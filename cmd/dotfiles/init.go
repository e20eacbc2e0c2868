package dotfiles

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattcuento/dotfiles-tool/pkg/errors"
	"github.com/mattcuento/dotfiles-tool/pkg/filesystem"
	"github.com/mattcuento/dotfiles-tool/pkg/install"
)

func newInitCmd() *cobra.Command {
	var targetDir string

	cmd := &cobra.Command{
		Use:   "init <repo-url>",
		Short: MsgInitShort,
		Args:  cobra.ExactArgs(1),

		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoURL := args[0]
			if repoURL == "" {
				return errors.New(errors.ErrInvalidInput, "repository URL is required")
			}

			p, err := initPaths()
			if err != nil {
				return err
			}
			if targetDir == "" {
				targetDir = p.DotfilesRoot()
			}

			if err := install.CloneDotfilesRepo(filesystem.NewOS(), targetDir, repoURL); err != nil {
				return err
			}
			fmt.Printf(MsgRepoCloned, targetDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetDir, "target", "", "Clone destination (default: dotfiles root)")
	return cmd
}
