package cli

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/dmitrijs2005/bookmarker/internal/shared"
)

var errNothingToChange = errors.New("nothing to change")

func meCommand() *cli.Command {
	return &cli.Command{
		Name:  "me",
		Usage: "show the signed-in account",
		Action: func(c *cli.Context) error {
			s := sessionFrom(c)
			api, err := s.authorized()
			if err != nil {
				return err
			}
			acc, err := api.Me(c.Context)
			if err != nil {
				return withHint(err)
			}
			return printAccount(s, acc)
		},
		Subcommands: []*cli.Command{
			{
				Name:  "edit",
				Usage: "change email or name",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "first-name"},
					&cli.StringFlag{Name: "last-name"},
				},
				Action: func(c *cli.Context) error {
					s := sessionFrom(c)

					var req shared.EditUserRequest
					req.Email = optional(c, "email")
					req.FirstName = optional(c, "first-name")
					req.LastName = optional(c, "last-name")
					if req.Email == nil && req.FirstName == nil && req.LastName == nil {
						return errNothingToChange
					}

					api, err := s.authorized()
					if err != nil {
						return err
					}
					acc, err := api.EditMe(c.Context, req)
					if err != nil {
						return withHint(err)
					}
					return printAccount(s, acc)
				},
			},
		},
	}
}

// optional returns the flag value only if the user set it, so an explicit
// empty string still clears the field.
func optional(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}
