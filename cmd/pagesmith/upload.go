package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/pagesmith/internal/assets"
)

func newUploadCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <image>",
		Short: "Store an image and print its URL for use in block fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, s, err := app.Open(cmd, "upload")
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Upload(ctx, args[0])
			if err != nil {
				suggestion := ""
				switch {
				case assets.IsKind(err, assets.KindWrongType):
					suggestion = "Upload a JPEG, PNG, WebP or GIF image."
				case assets.IsKind(err, assets.KindTooLarge):
					suggestion = "Resize the image or raise uploads.max_bytes in your config."
				}
				return newCommandError("upload", args[0], err, suggestion)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.URL)
			fmt.Fprintf(cmd.ErrOrStderr(), "Stored %s (%s, %s)\n", res.FileName, res.MIME, humanize.IBytes(uint64(res.Size)))
			return nil
		},
	}
}
