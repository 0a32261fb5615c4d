// Package main is the entry point for the iisim application
package main

import (
	"github.com/idesignres/iisim/cmd"
)

func main() {
	cmd.Execute()
}
