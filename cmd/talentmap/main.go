// main is the entry point for the talentmap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/talentmap/talentmap/cmd"
	"github.com/talentmap/talentmap/internal/paramstore"
)

func main() {
	err := cmd.Execute()
	paramstore.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
