// Command ght is the operator CLI for ght-core: local lookups, catalog
// dumps, credential helpers and the SQLite to PostgreSQL import.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Getenv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
