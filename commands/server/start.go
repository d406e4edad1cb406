package server

import (
	"flag"

	"github.com/iov-one/crosspile/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"

	defaultBind = "tcp://localhost:26658"
)

// Options are the settings an application is generated with.
type Options struct {
	Home   string
	Logger log.Logger
	Debug  bool
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

type startArgs struct {
	bind  string
	debug bool
}

func parseStartFlags(args []string) (startArgs, error) {
	var sa startArgs
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.StringVar(&sa.bind, flagBind, defaultBind, "address server listens on")
	fs.BoolVar(&sa.debug, flagDebug, false, "call stack returned on error")
	if err := fs.Parse(args); err != nil {
		return sa, errors.Wrap(errors.ErrInput, err.Error())
	}
	return sa, nil
}

// StartCmd initializes the application and serves it over an ABCI socket
// until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	sa, err := parseStartFlags(args)
	if err != nil {
		return err
	}

	app, err := gen(&Options{
		Home:   home,
		Logger: logger,
		Debug:  sa.debug,
	})
	if err != nil {
		return errors.Wrap(err, "cannot generate application")
	}

	logger.Info("Starting ABCI app", "bind", sa.bind)

	svr, err := server.NewServer(sa.bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "cannot create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "cannot start server")
	}

	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Cannot stop ABCI server", "err", err)
		}
	})
	// TrapSignal exits the process on a signal
	select {}
}
