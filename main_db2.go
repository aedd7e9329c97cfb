//go:build db2

package main

// DB2 needs cgo and the IBM clidriver, so it is only linked with -tags db2.
import _ "github.com/ibmdb/go_ibm_db"
