/*
Prepllserver starts a prepll server and begins listening for new connections.

Usage:

	prepllserver [flags]
	prepllserver [flags] -l [[ADDRESS]:PORT]

Once started, the prepll server will listen for HTTP requests and respond to
them using REST protocol. By default, it will listen on localhost:8080. This can
be changed with the --listen/-l flag (or config via environment var or config
file). The flag argument must be either a full address with port, such as
"192.168.0.2:6001", or just the port preceeded by a colon, such as ":6001".

The flags are:

	-v, --version
		Give the current version of the prepll server and then exit.

	-c, --config FILE
		Read settings from the given TOML file. Defaults to "prepll.toml" in
		the current working directory; if that file does not exist, the
		default settings are used. The [server] table of the file gives the
		listen address and database; the grammar settings are used for every
		grammar the server prepares.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		PREPLL_LISTEN_ADDRESS, and if that is not given, will default to the
		config file setting.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable PREPLL_DATABASE, and if that is not
		given, will default to the config file setting.
*/
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/prepll/internal/config"
	"github.com/dekarrin/prepll/internal/version"
	"github.com/dekarrin/prepll/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "PREPLL_LISTEN_ADDRESS"
	EnvDB     = "PREPLL_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the prepll server and then exit.")
	flagConfig  = pflag.StringP("config", "c", config.DefaultPath, "Read settings from the given TOML file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (prepll v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	fileCfg, err := config.Load(*flagConfig, pflag.Lookup("config").Changed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load config: %s\n", err.Error())
		os.Exit(1)
	}

	// get address info
	listenAddr := fileCfg.Server.ListenAddress
	if envListen := os.Getenv(EnvListen); envListen != "" {
		listenAddr = envListen
	}
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	addr, port, err := splitListenAddress(listenAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	// assemble a server config
	cfg := server.Config{
		Grammar: fileCfg.GrammarOptions(),
	}

	// look at db connection string
	dbConnStr := fileCfg.Server.Database
	if envDB := os.Getenv(EnvDB); envDB != "" {
		dbConnStr = envDB
	}
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr != "" {
		cfg.DB, err = server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err.Error())
			os.Exit(1)
		}
	}

	// configuration complete, initialize the server
	ps, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer ps.Close()
	log.Printf("DEBUG Server initialized with %s database", cfg.FillDefaults().DB.Type)

	// okay, now actually launch it
	log.Printf("INFO  Starting prepll server %s...", version.ServerCurrent)
	ps.ServeForever(addr, port)
}

// splitListenAddress splits a listen address in ADDRESS:PORT or :PORT format.
// An empty listen address gives the zero values, which ServeForever replaces
// with its defaults.
func splitListenAddress(listenAddr string) (string, int, error) {
	if listenAddr == "" {
		return "", 0, nil
	}

	bindParts := strings.SplitN(listenAddr, ":", 2)
	if len(bindParts) != 2 {
		return "", 0, fmt.Errorf("Listen address is not in ADDRESS:PORT or :PORT format.")
	}

	port, err := strconv.Atoi(bindParts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%q is not a valid port number.", bindParts[1])
	}

	return bindParts[0], port, nil
}
