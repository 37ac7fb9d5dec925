/*
NAME
  main.go

DESCRIPTION
  gavfsrv is a small server exercising GAVF's duplex transport and
  control/response protocol: it listens on a TCP or unix socket, and for
  each connection answers PING, SRC_START (reading a .gavf file's program
  header, using a cached packet index when available) and the other
  interactive-mode commands.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements gavfsrv, a server exercising GAVF's
// interactive control/response protocol.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/gavf/gavf/indexcache"
	gio "github.com/ausocean/gavf/io"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v0.1.0"

func main() {
	cmd := &cli.Command{
		Name:    "gavfsrv",
		Usage:   "a GAVF streaming server",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML config file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gavfsrv:", err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	cfg, err := LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	verbosity := logging.Info
	switch cfg.LogVerbosity {
	case "debug":
		verbosity = logging.Debug
	case "warning":
		verbosity = logging.Warning
	case "error":
		verbosity = logging.Error
	}

	fileLog := &lumberjack.Logger{
		Filename:   cfg.LogPath,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackup,
		MaxAge:     cfg.LogMaxAgeDay,
	}
	log := logging.New(verbosity, io.MultiWriter(fileLog, os.Stderr), true)
	log.Info("starting gavfsrv", "version", version, "scheme", cfg.Scheme, "addr", cfg.Addr)

	cache, err := indexcache.Open(cfg.IndexCachePath)
	if err != nil {
		log.Warning("gavfsrv: index cache unavailable, continuing without it", "err", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	var ln net.Listener
	switch cfg.Scheme {
	case "unix":
		ln, err = gio.ListenUnix(cfg.Addr)
	default:
		ln, err = gio.ListenTCP(cfg.Addr)
	}
	if err != nil {
		return err
	}
	defer ln.Close()

	s := &server{cfg: cfg, log: log, cache: cache}
	return s.serve(ln)
}
