package cli

import (
	"fmt"
	"strings"
)

type WinAddCmd struct {
	Text string `arg:"" help:"Win text."`
}

func (c *WinAddCmd) Run(ctx *Context) error {
	entry, err := ctx.Store.AddWin(c.Text)
	if err != nil {
		return err
	}
	fmt.Printf("Added to Small Wins: %s\n", entry.Text)
	return nil
}

type WinListCmd struct {
	Limit int `short:"n" help:"Show at most this many entries (0 = all)." default:"0"`
}

func (c *WinListCmd) Run(ctx *Context) error {
	logs := ctx.Store.Logs()
	if len(logs) == 0 {
		fmt.Println("[System] No wins logged yet...")
		return nil
	}
	fmt.Printf("Total Victories: %d\n", len(logs))
	for i, entry := range logs {
		if c.Limit > 0 && i >= c.Limit {
			break
		}
		fmt.Printf("  [%s] %s\n", FormatWhen(entry.Date), strings.ToUpper(entry.Text))
	}
	return nil
}
