package main

/*
* CLI to build, inspect and broadcast iBeacon advertisements
 */

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// reportError prints err verbatim; error text often quotes user input.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, Red(err.Error()))
}

var beaconFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "uuid",
		Value:  defaultUUID,
		Usage:  "proximity UUID",
		EnvVar: "BEACON_UUID",
	},
	cli.IntFlag{
		Name:   "major",
		Value:  1,
		EnvVar: "BEACON_MAJOR",
	},
	cli.IntFlag{
		Name:   "minor",
		Value:  1,
		EnvVar: "BEACON_MINOR",
	},
	cli.IntFlag{
		Name:   "power",
		Value:  -10,
		Usage:  "measured power at 1m in dBm",
		EnvVar: "BEACON_POWER",
	},
	cli.StringFlag{
		Name:   "name",
		Usage:  "local name carried in the scan response",
		EnvVar: "BEACON_NAME",
	},
}

var advertiseFlags = append([]cli.Flag{
	cli.IntFlag{
		Name:   "device",
		Value:  -1,
		Usage:  "HCI device id, -1 for the first available",
		EnvVar: "BEACON_DEVICE",
	},
	cli.DurationFlag{
		Name:   "interval",
		Value:  100 * time.Millisecond,
		Usage:  "advertising interval, 20ms to 10.24s",
		EnvVar: "BEACON_INTERVAL",
	},
}, beaconFlags...)

func setupLogger(c *cli.Context) error {
	cfg := zap.NewDevelopmentConfig()
	if !c.Bool("debug") {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "beaconctl"
	app.Usage = "build, inspect and broadcast iBeacon advertisements"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "debug", Usage: "log HCI traffic", EnvVar: "BEACON_DEBUG"},
	}
	app.Before = setupLogger
	app.After = func(c *cli.Context) error {
		zap.L().Sync()
		return nil
	}
	app.Commands = []cli.Command{
		cli.Command{
			Name:    "encode",
			Aliases: []string{"e"},
			Usage:   "print the advertising and scan response data for a beacon",
			Flags:   beaconFlags,
			Action:  encodeCommand,
		},
		cli.Command{
			Name:      "decode",
			Aliases:   []string{"d"},
			Usage:     "list the elements of hex encoded advertising data",
			ArgsUsage: "HEX",
			Action:    decodeCommand,
		},
		cli.Command{
			Name:   "uuid",
			Usage:  "generate a random proximity UUID",
			Action: uuidCommand,
		},
		cli.Command{
			Name:   "advertise",
			Usage:  "broadcast a beacon until interrupted",
			Flags:  advertiseFlags,
			Action: advertiseCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
