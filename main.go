package main

import (
	"context"
	"os"

	"github.com/compozy/gitworkflow/cmd"
	"github.com/compozy/gitworkflow/internal/ui"
)

func main() {
	interrupts := ui.NewInterruptHandler(os.Stdout, os.Exit)
	stop := interrupts.Listen()
	defer stop()
	cmd.Execute(context.Background(), interrupts)
}
