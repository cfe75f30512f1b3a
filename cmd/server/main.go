package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/pkg/profile"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
			os.Exit(1)
		}
	}()

	addr := flag.String("addr", ":8002", "address to serve on, overridden by CHESSCORE_ADDR")
	profilePath := flag.String("profile", "", "write a cpu profile to this directory")
	flag.Parse()

	if env := os.Getenv("CHESSCORE_ADDR"); env != "" {
		*addr = env
	}

	if *profilePath != "" {
		p := profile.Start(profile.ProfilePath(*profilePath), profile.NoShutdownHook)
		defer p.Stop()
	}

	server := NewServer(DefaultLogger)

	log.Println("serving at", *addr)
	err := Wrap(http.ListenAndServe(*addr, server.Router()))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
