package main

import (
	"os"

	"github.com/dmitrijs2005/bookmarker/internal/client/cli"
)

func main() {

	app := cli.NewApp()

	if err := app.Run(os.Args); err != nil {
		cli.PrintError(app.ErrWriter, err)
		os.Exit(1)
	}

}
