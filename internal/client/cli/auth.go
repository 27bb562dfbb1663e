package cli

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var errPasswordMismatch = errors.New("passwords do not match")

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "account email (prompted for when absent)",
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "account password (prompted for without echo when absent)",
			EnvVars: []string{"BOOKMARKER_PASSWORD"},
		},
	}
}

func signUpCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "create an account",
		Flags: credentialFlags(),
		Action: func(c *cli.Context) error {
			s := sessionFrom(c)
			email, password, err := credentials(c, s, true)
			if err != nil {
				return err
			}

			acc, err := s.anonymous().SignUp(c.Context, email, password)
			if err != nil {
				return withHint(err)
			}
			return printAccount(s, acc)
		},
	}
}

func signInCommand() *cli.Command {
	return &cli.Command{
		Name:  "signin",
		Usage: "sign in and store the access token",
		Flags: credentialFlags(),
		Action: func(c *cli.Context) error {
			s := sessionFrom(c)
			email, password, err := credentials(c, s, false)
			if err != nil {
				return err
			}

			tok, err := s.anonymous().SignIn(c.Context, email, password)
			if err != nil {
				return withHint(err)
			}
			if err := s.tokens.Save(tok); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "signed in as %s\n", email)
			return nil
		},
	}
}

func signOutCommand() *cli.Command {
	return &cli.Command{
		Name:  "signout",
		Usage: "forget the stored access token",
		Action: func(c *cli.Context) error {
			s := sessionFrom(c)
			if err := s.tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(s.out, "signed out")
			return nil
		},
	}
}

// credentials takes email and password from flags, prompting for whichever
// is missing. With confirm the prompted password is asked twice.
func credentials(c *cli.Context, s *session, confirm bool) (string, string, error) {
	email := c.String("email")
	if email == "" {
		var err error
		if email, err = GetSimpleText(s.in, "Email", s.prompt); err != nil {
			return "", "", err
		}
	}

	if pw := c.String("password"); pw != "" {
		return email, pw, nil
	}

	pw, err := GetPassword("Password: ", s.prompt)
	if err != nil {
		return "", "", err
	}
	if confirm {
		again, err := GetPassword("Repeat password: ", s.prompt)
		if err != nil {
			return "", "", err
		}
		if string(again) != string(pw) {
			return "", "", errPasswordMismatch
		}
	}
	return email, string(pw), nil
}
