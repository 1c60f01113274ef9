package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"launchpad-api/internal/client"
)

type videosCmd struct{}

func (videosCmd) Name() string        { return "videos" }
func (videosCmd) Description() string { return "Manage video projects" }
func (videosCmd) Usage() string {
	return "videos list | create [-description d] [-publish] <title> <youtube-url> | publish <id> | unpublish <id> | delete <id>"
}

func (c videosCmd) Run(ctx context.Context, api *client.Client, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	rest := args[1:]
	switch args[0] {
	case "list":
		if len(rest) != 0 {
			return ErrUsage
		}
		return c.list(ctx, api)
	case "create":
		return c.create(ctx, api, rest)
	case "publish", "unpublish":
		if len(rest) != 1 {
			return ErrUsage
		}
		v, err := api.SetPublished(ctx, rest[0], args[0] == "publish")
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "%s published=%t\n", v.ID, v.IsPublished)
		return nil
	case "delete":
		if len(rest) != 1 {
			return ErrUsage
		}
		if err := api.DeleteVideo(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted %s\n", rest[0])
		return nil
	default:
		return ErrUsage
	}
}

func (videosCmd) list(ctx context.Context, api *client.Client) error {
	list, err := api.ListVideos(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No videos")
		return nil
	}
	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPUBLISHED\tYOUTUBE\tCREATED\tTITLE")
	for _, v := range list {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\t%s\n", v.ID, v.IsPublished, v.YouTubeVideoID, v.CreatedAt, v.Title)
	}
	return tw.Flush()
}

func (videosCmd) create(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("videos create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	description := fs.String("description", "", "video description")
	publish := fs.Bool("publish", false, "publish immediately")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() != 2 {
		return ErrUsage
	}

	v, err := api.CreateVideo(ctx, client.NewVideo{
		Title:       fs.Arg(0),
		Description: *description,
		YouTubeURL:  fs.Arg(1),
		IsPublished: publish,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created %s (youtube %s, published=%t)\n", v.ID, v.YouTubeVideoID, v.IsPublished)
	return nil
}

func init() { Register(videosCmd{}) }
