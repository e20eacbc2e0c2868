package main

import (
	"fmt"
	"os"

	"github.com/mattcuento/dotfiles-tool/cmd/dotfiles"
	"github.com/mattcuento/dotfiles-tool/pkg/style"
)

func main() {
	rootCmd := dotfiles.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
