package main

import "fmt"

// Run executes the params command.
func (c *ParamsCmd) Run(deps *Dependencies) error {
	for _, name := range deps.Config.Options.Names() {
		fmt.Fprintf(deps.Stdout, "%s=%s\n", name, deps.Config.Options[name])
	}
	return nil
}
