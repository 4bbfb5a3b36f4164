package main

import (
	"encoding/json"
	"os"

	"github.com/fatih/color"
)

var (
	warnColor   = color.New(color.FgYellow)
	headerColor = color.New(color.Bold)
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func warnf(format string, args ...any) {
	warnColor.Printf(format+"\n", args...)
}

func headerf(format string, args ...any) {
	headerColor.Printf(format+"\n", args...)
}
