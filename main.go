// Package main is the entry point for the extfix CLI.
package main

import "extfix.dev/pkg/extfix/cmd"

func main() {
	cmd.Execute()
}
