/*
Slci starts an interactive SimpleLang analysis session.

Source lines typed at the prompt are appended to an in-memory buffer, and
commands run the analysis phases over that buffer: the scanner, the symbol
table, the parser, and the three-address-code generator. Results are printed
to stdout. The session continues until end of input or the "QUIT" command.

Usage:

	slci [flags]

The flags are:

	-version
		Give the current version of SimpleLang tooling and then exit.

	-L/-lang [FILE]
		Use the provided SLC language definition file for the scanner instead
		of the built-in SimpleLang definition.

	-d/-direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched in
		a tty with stdin and stdout.

Once a session has started, input is checked for analysis commands. For an
explanation of the commands, type "HELP" once in a session. To exit the
session, type "QUIT".
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mawais/slc"
	"github.com/mawais/slc/internal/version"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem during the analysis session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode  int   = ExitSuccess
	flagVersion *bool = flag.Bool("version", false, "Gives the version info")
	langFile    string
	forceDirect bool
)

func init() {
	const (
		langUsage        = "an SLC language definition file to use for scanning instead of the built-in SimpleLang one"
		forceDirectUsage = "force reading directly from stdin instead of going through GNU readline where possible"
	)
	flag.StringVar(&langFile, "lang", "", langUsage)
	flag.StringVar(&langFile, "L", "", langUsage+" (shorthand)")
	flag.BoolVar(&forceDirect, "direct", false, forceDirectUsage)
	flag.BoolVar(&forceDirect, "d", false, forceDirectUsage+" (shorthand)")
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	flag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	eng, initErr := slc.New(os.Stdin, os.Stdout, langFile, forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	err := eng.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}
