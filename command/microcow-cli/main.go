// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/microcow/microcowd/version"
)

type metadata struct {
	connect string
	signer  string
	owner   string
	verbose bool
	e       io.Writer
	w       io.Writer
}

func main() {

	app := cli.NewApp()
	app.Name = "microcow-cli"
	app.Usage = "command line access to a microcowd user ledger"
	app.Version = version.Version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "",
			Usage: "*microcowd RPC host/IP and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "signer, s",
			Value: "",
			Usage: "*signer identity `ACCOUNT` (base58)",
		},
		cli.StringFlag{
			Name:  "owner, o",
			Value: "",
			Usage: " owner identity `ACCOUNT` (base58) [default: signer]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "initialise",
			Usage:  "set up the account on the connected user ledger",
			Action: runInitialise,
		},
		{
			Name:   "subscribe",
			Usage:  "re-request the root broadcast subscription",
			Action: runSubscribe,
		},
		{
			Name:      "buy",
			Usage:     "buy one new cow",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*cow name `STRING`",
				},
				cli.StringFlag{
					Name:  "breed, b",
					Value: "",
					Usage: "*cow breed `STRING` [Jersey|Limousin|Hallikar|Hereford|Holstein|Simmental]",
				},
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: " cow id `HEX` [default: random]",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "feed",
			Usage:     "feed one owned cow",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*cow name `STRING`",
				},
			},
			Action: runFeed,
		},
		{
			Name:      "sell",
			Usage:     "sell one owned cow back to the root ledger",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*cow name `STRING`",
				},
			},
			Action: runSell,
		},
		{
			Name:   "bury",
			Usage:  "clear all dead cows from the local records",
			Action: runBury,
		},
		{
			Name:      "cow",
			Usage:     "display one cow and its lifecycle state",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*cow name `STRING`",
				},
			},
			Action: runGet,
		},
		{
			Name:   "list",
			Usage:  "list every cow this account owns",
			Action: runList,
		},
		{
			Name:   "count",
			Usage:  "display the size of the local replica",
			Action: runCount,
		},
		{
			Name:   "notifications",
			Usage:  "display undelivered buy and sell outcomes",
			Action: runNotifications,
		},
		{
			Name:      "delete-notification",
			Usage:     "drop the oldest notification of a queue",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "queue, q",
					Value: "",
					Usage: "*notification queue `NAME` [buy|sell]",
				},
			},
			Action: runDeleteNotification,
		},
		{
			Name:   "info",
			Usage:  "display microcowd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display microcow-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version.Version)
				return nil
			},
		},
	}

	// check the global flags
	app.Before = func(c *cli.Context) error {

		// no connection is needed for these commands
		command := c.Args().Get(0)
		if "version" == command {
			return nil
		}

		connect := c.GlobalString("connect")
		if "" == connect {
			return fmt.Errorf("missing connect")
		}

		signer := c.GlobalString("signer")
		owner := c.GlobalString("owner")
		if "" == owner {
			owner = signer
		}

		c.App.Metadata["config"] = &metadata{
			connect: connect,
			signer:  signer,
			owner:   owner,
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}

		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
