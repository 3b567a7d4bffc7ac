package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/harunnryd/tachi/internal/mcp"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed by the configured tool server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		session, err := mcp.Dial(ctx, cfg.Tools.Command)
		if err != nil {
			return fmt.Errorf("tool server connect: %w", err)
		}
		defer func() { _ = session.Close() }()

		catalog, err := session.ListTools(ctx)
		if err != nil {
			return fmt.Errorf("list tools: %w", err)
		}
		if len(catalog) == 0 {
			fmt.Println("No tools found")
			return nil
		}

		purple := lipgloss.Color("99")
		gray := lipgloss.Color("245")
		lightGray := lipgloss.Color("241")

		headerStyle := lipgloss.NewStyle().
			Foreground(purple).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 1)
		oddRowStyle := lipgloss.NewStyle().
			Foreground(gray).
			Padding(0, 1)
		evenRowStyle := lipgloss.NewStyle().
			Foreground(lightGray).
			Padding(0, 1)

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case row%2 == 0:
					return evenRowStyle
				default:
					return oddRowStyle
				}
			}).
			Headers("Name", "Description")

		for _, tool := range catalog {
			t.Row(tool.Name, truncateString(tool.Description, 60))
		}

		fmt.Println(t.String())
		return nil
	},
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
