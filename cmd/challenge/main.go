package main

import (
	"os"

	"github.com/Cooderhome/Prop-Firm-Challenge-Simulator-PFCS/cmd/challenge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
