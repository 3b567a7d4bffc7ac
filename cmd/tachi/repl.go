package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harunnryd/tachi/internal/agent"

	"charm.land/lipgloss/v2"
)

type REPL struct {
	agent  *agent.Agent
	reader *bufio.Reader

	headerStyle lipgloss.Style
	resultStyle lipgloss.Style
}

func NewREPL(a *agent.Agent) *REPL {
	purple := lipgloss.Color("99")
	gray := lipgloss.Color("245")

	return &REPL{
		agent:  a,
		reader: bufio.NewReader(os.Stdin),
		headerStyle: lipgloss.NewStyle().
			Foreground(purple).
			Bold(true),
		resultStyle: lipgloss.NewStyle().
			Foreground(gray),
	}
}

func (r *REPL) Start(ctx context.Context) error {
	fmt.Println(r.headerStyle.Render("tachi interactive session"))
	fmt.Println("Type 'exit' to quit.")
	fmt.Println()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := r.readLine(ctx); err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		}
	}
}

func (r *REPL) readLine(ctx context.Context) error {
	fmt.Print(">>> ")
	text, err := r.reader.ReadString('\n')
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if text == "exit" || text == "quit" {
		return io.EOF
	}

	result := r.agent.Run(ctx, text)

	fmt.Println()
	fmt.Println(r.headerStyle.Render("--- RESULT ---"))
	fmt.Println(r.resultStyle.Render(result))
	fmt.Println()
	return nil
}
