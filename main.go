package main

import (
	"github.com/gateflow-sim/gateflow-sim/cmd"
)

func main() {
	cmd.Execute()
}
