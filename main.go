// main is the entry point for the wellscore CLI.
package main

import (
	"github.com/huangsam/wellscore/cmd"
	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/internal/history"
)

func main() {
	defer history.CloseHistory()
	cmd.SetHistoryManager(history.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		history.CloseHistory()
		contract.LogFatal("wellscore", err)
	}
}
