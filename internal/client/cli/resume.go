package cli

import (
	"context"
	"time"
)

func (a *App) Resume(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.printf("Usage: resume upload <path> | resume url <key>")
		return nil
	}

	switch args[0] {
	case "upload":
		u, err := a.resumes.Upload(ctx, args[1])
		if err != nil {
			return a.fail(ctx, "Upload", err)
		}
		a.printf("Uploaded as %s", u.Key)
	case "url":
		u, err := a.resumes.DownloadURL(ctx, args[1])
		if err != nil {
			return a.fail(ctx, "Download link", err)
		}
		a.printf("%s", u.URL)
		a.printf("Valid until %s", u.ExpiresAt.Local().Format(time.DateTime))
	default:
		a.printf("Usage: resume upload <path> | resume url <key>")
	}
	return nil
}
