//go:build !linux
// +build !linux

package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func advertiseCommand(c *cli.Context) error {
	return errors.New("advertise needs an HCI user channel, which is only available on linux")
}
