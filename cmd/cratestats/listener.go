package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

// listenFDStart is the first file descriptor used for passed sockets,
// after stdin, stdout, and stderr.
const listenFDStart = 3

// inheritedListener returns a listener for a socket handed to the process
// by a supervisor or live-reload watcher via the LISTEN_FDS convention.
// It returns (nil, nil) when no socket was passed and the caller should
// bind its own.
func inheritedListener() (net.Listener, error) {
	nfds := os.Getenv("LISTEN_FDS")
	if nfds == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(nfds)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid LISTEN_FDS value %q", nfds)
	}

	f := os.NewFile(uintptr(listenFDStart), "inherited-listener")
	if f == nil {
		return nil, fmt.Errorf("file descriptor %d not open", listenFDStart)
	}
	listener, err := net.FileListener(f)
	// net.FileListener duplicates the descriptor; the original is no
	// longer needed either way.
	f.Close()
	if err != nil {
		return nil, err
	}
	return listener, nil
}
