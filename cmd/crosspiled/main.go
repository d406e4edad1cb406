package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/cmd/crosspiled/app"
	"github.com/iov-one/crosspile/commands"
	"github.com/iov-one/crosspile/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".crosspiled")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
}

func helpMessage() {
	fmt.Println("crosspiled")
	fmt.Println("          Two party token wager ABCI application")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check that genesis files can be loaded")
	fmt.Println("testgen   Write example encodings into a directory")
	fmt.Println("version   Print the app version")
	fmt.Println("")
	flag.PrintDefaults()
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "crosspile")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateCmd(app.Initializers(), logger, rest)
	case "testgen":
		err = commands.TestGenCmd(app.Examples(), rest)
	case "version":
		fmt.Println(crosspile.Version())
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		helpMessage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
