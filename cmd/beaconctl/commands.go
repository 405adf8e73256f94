package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muxable/beacon/pkg/bluetooth"
	"github.com/muxable/beacon/pkg/gap"
	"github.com/muxable/beacon/pkg/hex"
	"github.com/muxable/beacon/pkg/ibeacon"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func encodeCommand(c *cli.Context) error {
	b, err := beaconFromContext(c)
	if err != nil {
		return err
	}
	p, err := buildPayload(b, c.String("name"))
	if err != nil {
		return err
	}
	fmt.Println(Green(b.String()))
	fmt.Printf("%s %s\n", Cyan("advertising data:"), p.Advertisement)
	if p.ScanResponse.Len() > 0 {
		fmt.Printf("%s %s\n", Cyan("scan response:   "), p.ScanResponse)
	}
	return nil
}

func decodeCommand(c *cli.Context) error {
	if !c.Args().Present() {
		return errors.New("decode requires hex encoded advertising data")
	}
	s := strings.Join(c.Args(), "")
	s = strings.NewReplacer(" ", "", ":", "").Replace(strings.TrimPrefix(s, "0x"))
	data, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrapf(err, "decoding %q", s)
	}
	return printFields(os.Stdout, data)
}

func printFields(w io.Writer, data []byte) error {
	fields, err := gap.Decode(data)
	if err != nil {
		return err
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s %s\n", Cyan(f.DataType.String()+":"), describe(f))
	}
	return nil
}

func describe(f gap.Field) string {
	if flags, ok := f.Flags(); ok {
		return fmt.Sprintf("0x%s", hex.Byte(byte(flags)))
	}
	if name, complete, ok := f.LocalName(); ok {
		if !complete {
			return fmt.Sprintf("%q (shortened)", name)
		}
		return fmt.Sprintf("%q", name)
	}
	if p, ok := f.TxPowerLevel(); ok {
		return fmt.Sprintf("%ddBm", p)
	}
	if uu, ok := f.ServiceUUIDs128(); ok {
		ss := make([]string, len(uu))
		for i, u := range uu {
			ss[i] = u.String()
		}
		return strings.Join(ss, ", ")
	}
	if m, ok := f.ManufacturerData(); ok {
		if b, err := ibeacon.Parse(m); err == nil {
			return Green("iBeacon " + b.String())
		}
		return fmt.Sprintf("company 0x%s %s", hex.Uint16(m.CompanyID), hex.EncodeToString(m.Data))
	}
	return Yellow(hex.EncodeToString(f.Data))
}

func uuidCommand(c *cli.Context) error {
	fmt.Println(bluetooth.NewRandomUUID())
	return nil
}
