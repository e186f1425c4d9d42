package main

import (
	"context"
	"log"
	"os"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/account"
	"github.com/darasahq/darasa/storage/kvstore"
	"github.com/darasahq/darasa/storage/state"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	kv, err := setUpStorage(conf)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		acctSvc: account.NewService(state.NewAccountStore(kv), nil /* mailSvc */, conf),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func setUpStorage(conf *core.Config) (kvstore.Store, error) {
	switch conf.Storage.Backend {
	case "redis":
		return kvstore.NewRedis(
			context.Background(),
			conf.Storage.RedisAddr,
			conf.Storage.RedisPassword,
			conf.Storage.RedisDB,
			conf.AppName,
		)
	case "memory":
		return kvstore.NewMemory(), nil
	default:
		return kvstore.NewFile(conf.Storage.Dir)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
