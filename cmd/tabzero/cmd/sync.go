package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/remote"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upload or download the bookmarks snapshot",
		Long: `Sync copies bookmarks and categories to and from the configured
remote (sync.backend: webdav or redis). Download replaces local
bookmarks; on any error local data is left untouched.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "upload",
			Short: "Upload local bookmarks to the remote",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSync(cmd, (*remote.Syncer).Upload, "Uploaded")
			},
		},
		&cobra.Command{
			Use:   "download",
			Short: "Replace local bookmarks with the remote snapshot",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSync(cmd, (*remote.Syncer).Download, "Downloaded")
			},
		},
	)
	return cmd
}

func runSync(cmd *cobra.Command, op func(*remote.Syncer, context.Context) (remote.Result, error), verb string) error {
	a := appFrom(cmd)

	ctx := cmd.Context()
	if a.cfg.Sync.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Sync.Timeout)
		defer cancel()
	}

	blobs, closeBlobs, err := a.blobStore(ctx)
	if err != nil {
		return err
	}
	defer closeBlobs()

	syncer := remote.NewSyncer(remote.Params{
		Blobs:  blobs,
		Local:  a.bookmarks,
		Device: a.cfg.Sync.Device,
		Logger: a.log,
	})
	res, err := op(syncer, ctx)
	if err != nil {
		return err
	}

	success(cmd.OutOrStdout(), "%s %d bookmark(s) and %d categor%s", verb,
		res.Bookmarks, res.Categories, pluralY(res.Categories))
	if !res.UpdatedAt.IsZero() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), faint.Sprintf("updated %s by %s",
			res.UpdatedAt.Time().Format("2006-01-02 15:04"), res.Device))
	}
	return nil
}
