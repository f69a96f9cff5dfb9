package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// confirmDestructive asks the user a yes/no question before a destructive
// action. When force is set or stdin is not a terminal, it proceeds without
// asking.
func confirmDestructive(message string, force bool) (bool, error) {
	if force || !term.IsTerminal(int(os.Stdin.Fd())) {
		return true, nil
	}

	fmt.Printf("%s [y/n]: ", message)
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}
	return response == "y" || response == "Y" || response == "yes" || response == "Yes", nil
}
