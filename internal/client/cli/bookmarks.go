package cli

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dmitrijs2005/bookmarker/internal/shared"
)

var errMissingID = errors.New("bookmark id required")

func bookmarksCommand() *cli.Command {
	return &cli.Command{
		Name:    "bookmarks",
		Aliases: []string{"bm"},
		Usage:   "manage bookmarks",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "list your bookmarks",
				Action:  listBookmarks,
			},
			{
				Name:  "add",
				Usage: "save a new bookmark",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
					&cli.StringFlag{Name: "link", Aliases: []string{"l"}, Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}},
				},
				Action: addBookmark,
			},
			{
				Name:      "get",
				Usage:     "show one bookmark",
				ArgsUsage: "<id>",
				Action:    getBookmark,
			},
			{
				Name:      "edit",
				Usage:     "change a bookmark",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}},
					&cli.StringFlag{Name: "link", Aliases: []string{"l"}},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}},
				},
				Action: editBookmark,
			},
			{
				Name:      "rm",
				Aliases:   []string{"delete"},
				Usage:     "delete a bookmark",
				ArgsUsage: "<id>",
				Action:    deleteBookmark,
			},
		},
	}
}

func listBookmarks(c *cli.Context) error {
	s := sessionFrom(c)
	api, err := s.authorized()
	if err != nil {
		return err
	}
	list, err := api.ListBookmarks(c.Context)
	if err != nil {
		return withHint(err)
	}
	return printBookmarks(s, list)
}

func addBookmark(c *cli.Context) error {
	s := sessionFrom(c)
	api, err := s.authorized()
	if err != nil {
		return err
	}
	bm, err := api.CreateBookmark(c.Context, shared.CreateBookmarkRequest{
		Title:       c.String("title"),
		Link:        c.String("link"),
		Description: c.String("description"),
	})
	if err != nil {
		return withHint(err)
	}
	return printBookmark(s, bm)
}

func getBookmark(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return errMissingID
	}
	s := sessionFrom(c)
	api, err := s.authorized()
	if err != nil {
		return err
	}
	bm, err := api.GetBookmark(c.Context, id)
	if err != nil {
		return withHint(err)
	}
	return printBookmark(s, bm)
}

func editBookmark(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return errMissingID
	}

	req := shared.EditBookmarkRequest{
		Title:       optional(c, "title"),
		Link:        optional(c, "link"),
		Description: optional(c, "description"),
	}
	if req.Title == nil && req.Link == nil && req.Description == nil {
		return errNothingToChange
	}

	s := sessionFrom(c)
	api, err := s.authorized()
	if err != nil {
		return err
	}
	bm, err := api.EditBookmark(c.Context, id, req)
	if err != nil {
		return withHint(err)
	}
	return printBookmark(s, bm)
}

func deleteBookmark(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return errMissingID
	}
	s := sessionFrom(c)
	api, err := s.authorized()
	if err != nil {
		return err
	}
	if err := api.DeleteBookmark(c.Context, id); err != nil {
		return withHint(err)
	}
	fmt.Fprintf(s.out, "deleted %s\n", id)
	return nil
}
