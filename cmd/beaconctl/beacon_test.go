package main

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/muxable/beacon/pkg/gap"
	"github.com/urfave/cli"
)

func init() {
	color.NoColor = true
}

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range beaconFlags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestDefaultBeacon(t *testing.T) {
	b, err := beaconFromContext(newContext(t))
	if err != nil {
		t.Fatal(err)
	}
	p, err := buildPayload(b, "")
	if err != nil {
		t.Fatal(err)
	}
	want := "0201061AFF4C000215B9407F30F5F8466EAFF925556B57FE6D00010001F6"
	if got := p.Advertisement.String(); got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if p.ScanResponse.Len() != 0 {
		t.Errorf("unexpected scan response %s", p.ScanResponse)
	}
}

func TestBeaconFlags(t *testing.T) {
	b, err := beaconFromContext(newContext(t,
		"--uuid", "e621e1f8-c36c-495a-93fc-0c247a3e6e5f",
		"--major", "65535",
		"--minor", "0",
		"--power", "-59"))
	if err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "E621E1F8-C36C-495A-93FC-0C247A3E6E5F major=65535 minor=0 power=-59dBm" {
		t.Errorf("got %s", got)
	}
}

func TestBeaconFlagsOutOfRange(t *testing.T) {
	tests := [][]string{
		{"--uuid", "E621E1F8C36C495A93FC0C247A3E6E5F"},
		{"--major", "65536"},
		{"--minor", "-1"},
		{"--power", "128"},
	}
	for _, args := range tests {
		if _, err := beaconFromContext(newContext(t, args...)); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestBuildPayloadName(t *testing.T) {
	b, err := beaconFromContext(newContext(t))
	if err != nil {
		t.Fatal(err)
	}

	p, err := buildPayload(b, "kitchen")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.ScanResponse.String(); got != "08096B69746368656E" {
		t.Errorf("got %s", got)
	}

	p, err = buildPayload(b, strings.Repeat("x", 40))
	if err != nil {
		t.Fatal(err)
	}
	fields, err := p.ScanResponse.Fields()
	if err != nil {
		t.Fatal(err)
	}
	name, complete, ok := fields[0].LocalName()
	if !ok || complete || len(name) != gap.MaxLength-2 {
		t.Errorf("got name %q complete=%t", name, complete)
	}
	if p.ScanResponse.Len() != gap.MaxLength {
		t.Errorf("scan response is %d bytes", p.ScanResponse.Len())
	}
}

func TestPrintFields(t *testing.T) {
	b, err := beaconFromContext(newContext(t))
	if err != nil {
		t.Fatal(err)
	}
	p, err := buildPayload(b, "")
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := printFields(&out, p.Advertisement.Bytes()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Flags: 0x06",
		"iBeacon B9407F30-F5F8-466E-AFF9-25556B57FE6D major=1 minor=1 power=-10dBm",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output %q missing %q", out.String(), want)
		}
	}
}

func TestPrintFieldsMalformed(t *testing.T) {
	var out bytes.Buffer
	if err := printFields(&out, []byte{0x05, 0x09, 'a'}); err == nil {
		t.Error("expected error for overrunning element")
	}
}

func TestReportErrorKeepsPercent(t *testing.T) {
	_, err := beaconFromContext(newContext(t, "--uuid", "100%d-%s"))
	if err == nil {
		t.Fatal("expected error")
	}
	var out bytes.Buffer
	reportError(&out, err)
	if got := out.String(); !strings.Contains(got, `"100%d-%s"`) || strings.Contains(got, "%!") {
		t.Errorf("got %q", got)
	}
}
