package main

import (
	"os"

	"github.com/cephtools/check-ceph-df/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
