// Copyright 2023 The move-native Authors
// This file is part of move-native.
//
// move-native is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// move-native is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with move-native. If not, see <http://www.gnu.org/licenses/>.

// mvdump inspects type universes of the native value runtime: struct
// layouts, symbolic debug metadata and account addresses.
package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"runtime"
	"sort"
	"text/tabwriter"

	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/solana-labs/move/crypto"
	"github.com/solana-labs/move/debuginfo"
	"github.com/solana-labs/move/params"
	cli "gopkg.in/urfave/cli.v1"
)

const clientIdentifier = "mvdump"

var (
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""

	app = cli.NewApp()

	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug",
		Value: 2,
	}
	keyFileFlag = cli.StringFlag{
		Name:  "keyfile",
		Usage: "File containing a hex-encoded ed25519 key seed",
	}

	layoutCommand = cli.Command{
		Action:    layout,
		Name:      "layout",
		Usage:     "Print struct layouts of a type universe",
		ArgsUsage: "<universe.toml>",
		Category:  "INSPECTION COMMANDS",
		Description: `
Resolves the struct declarations of a TOML universe file with the host
platform's layout rules and prints the per-field offset table of every
struct.`,
	}
	describeCommand = cli.Command{
		Action:    describe,
		Name:      "describe",
		Usage:     "Emit symbolic debug metadata for a type universe",
		ArgsUsage: "<universe.toml>",
		Category:  "INSPECTION COMMANDS",
		Description: `
The output of this command is supposed to be machine-readable.`,
	}
	addrCommand = cli.Command{
		Action:    addr,
		Name:      "addr",
		Usage:     "Derive the account address of an ed25519 public key",
		ArgsUsage: "[<pubkey hex>]",
		Flags:     []cli.Flag{keyFileFlag},
		Category:  "ACCOUNT COMMANDS",
	}
	versionCommand = cli.Command{
		Action:    version,
		Name:      "version",
		Usage:     "Print version numbers",
		ArgsUsage: " ",
		Category:  "MISCELLANEOUS COMMANDS",
		Description: `
The output of this command is supposed to be machine-readable.`,
	}
)

func init() {
	app.Name = clientIdentifier
	app.Usage = "the move-native type universe inspector"
	app.Version = params.VersionWithCommit(gitCommit)
	app.HideVersion = true // we have a command to print the version
	app.Copyright = "Copyright 2023 The move-native Authors"
	app.Commands = []cli.Command{
		layoutCommand,
		describeCommand,
		addrCommand,
		versionCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Flags = []cli.Flag{verbosityFlag}
	app.Before = func(ctx *cli.Context) error {
		lvl := log.Lvl(ctx.GlobalInt(verbosityFlag.Name))
		log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat())))
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func layout(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		return errors.New("need a universe file as the only argument")
	}
	_, structs, err := buildUniverse(ctx.Args().First())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, typ := range structs {
		fmt.Fprintf(w, "struct %s\tsize %d\talign %d\n", typ.Name(), typ.Size(), typ.Align())
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			fmt.Fprintf(w, "  %s\t%s\toffset %d\tsize %d\n", f.Name, f.Type.Name(), f.Offset, f.Type.Size())
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func describe(ctx *cli.Context) error {
	if len(ctx.Args()) != 1 {
		return errors.New("need a universe file as the only argument")
	}
	_, structs, err := buildUniverse(ctx.Args().First())
	if err != nil {
		return err
	}
	emitter := debuginfo.NewEmitter(runtime.NumCPU())
	defer emitter.Stop()
	for _, desc := range emitter.DescribeAll(structs) {
		enc, err := desc.JSON()
		if err != nil {
			return err
		}
		fmt.Printf("// %s %s\n%s\n", desc.Name, desc.Digest().Hex(), enc)
	}
	return nil
}

func addr(ctx *cli.Context) error {
	var pub ed25519.PublicKey
	switch {
	case ctx.String(keyFileFlag.Name) != "":
		key, err := crypto.LoadKey(ctx.String(keyFileFlag.Name))
		if err != nil {
			return err
		}
		pub = key.Public().(ed25519.PublicKey)
	case len(ctx.Args()) == 1:
		b, err := hex.DecodeString(ctx.Args().First())
		if err != nil || len(b) != ed25519.PublicKeySize {
			return errors.New("argument is not a 32 byte hex public key")
		}
		pub = ed25519.PublicKey(b)
	default:
		return errors.New("need a public key argument or --keyfile")
	}
	fmt.Println(crypto.PubkeyToAddress(pub).Hex())
	return nil
}

func version(ctx *cli.Context) error {
	fmt.Println(clientIdentifier)
	fmt.Println("Version:", params.Version)
	if gitCommit != "" {
		fmt.Println("Git Commit:", gitCommit)
	}
	fmt.Println("Architecture:", runtime.GOARCH)
	fmt.Println("Go Version:", runtime.Version())
	fmt.Println("Operating System:", runtime.GOOS)
	return nil
}
