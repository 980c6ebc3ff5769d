// inistore reads, edits and converts INI configuration files.
package main

import "github.com/thirteen37/inistore/internal/cmd"

func main() {
	cmd.Execute()
}
