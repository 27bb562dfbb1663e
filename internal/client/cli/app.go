package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dmitrijs2005/bookmarker/internal/client/client"
	"github.com/dmitrijs2005/bookmarker/internal/client/config"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const sessionKey = "session"

// session is what every command action needs: resolved settings, the token
// file and the terminal streams.
type session struct {
	cfg    *config.Config
	tokens *client.TokenStore
	in     *bufio.Reader
	out    io.Writer
	prompt io.Writer
	json   bool
}

// anonymous returns a client without credentials.
func (s *session) anonymous() *client.Client {
	return client.New(s.cfg.ServerURL, client.WithTimeout(s.cfg.RequestTimeout))
}

// authorized returns a client carrying the stored access token.
func (s *session) authorized() (*client.Client, error) {
	tok, err := s.tokens.Load()
	if err != nil {
		if errors.Is(err, client.ErrNoToken) {
			return nil, fmt.Errorf("%w: run 'bookmarker signin' first", err)
		}
		return nil, err
	}
	return client.New(s.cfg.ServerURL, client.WithTimeout(s.cfg.RequestTimeout), client.WithToken(tok)), nil
}

// NewApp builds the command tree. Output goes to app.Writer, prompts to
// app.ErrWriter and answers are read from app.Reader.
func NewApp() *cli.App {
	return &cli.App{
		Name:      "bookmarker",
		Usage:     "manage your bookmarks from the terminal",
		Version:   fmt.Sprintf("%s (built: %s)", Version, BuildTime),
		Flags:     globalFlags(),
		Before:    before,
		Reader:    os.Stdin,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Metadata:  map[string]any{},
		Commands: []*cli.Command{
			signUpCommand(),
			signInCommand(),
			signOutCommand(),
			meCommand(),
			bookmarksCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "bookmarker API address (default http://localhost:3333)",
			EnvVars: []string{"BOOKMARKER_SERVER"},
		},
		&cli.StringFlag{
			Name:    "token-file",
			Usage:   "where the access token is kept",
			EnvVars: []string{"BOOKMARKER_TOKEN_FILE"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "JSON config file",
			EnvVars: []string{"BOOKMARKER_CONFIG"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print results as JSON",
		},
	}
}

// before resolves the config (defaults, JSON file, then flags and env) and
// stores the session for the actions.
func before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("server") {
		cfg.ServerURL = c.String("server")
	}
	if c.IsSet("token-file") {
		cfg.TokenFile = c.String("token-file")
	}
	if c.IsSet("timeout") {
		cfg.RequestTimeout = c.Duration("timeout")
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[sessionKey] = &session{
		cfg:    cfg,
		tokens: client.NewTokenStore(cfg.TokenFile),
		in:     bufio.NewReader(c.App.Reader),
		out:    c.App.Writer,
		prompt: c.App.ErrWriter,
		json:   c.Bool("json"),
	}
	return nil
}

func sessionFrom(c *cli.Context) *session {
	s, _ := c.App.Metadata[sessionKey].(*session)
	return s
}

// withHint adds a next step to errors the user can act on.
func withHint(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("%w (sign in again with 'bookmarker signin')", err)
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("%w (is the server running?)", err)
	}
	return err
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
