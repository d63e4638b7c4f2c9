package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/miru-lang/miru/mirror"
	"github.com/miru-lang/miru/resolve"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "repl",
		Short:         "Interactive signature and resolution shell",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd)
		},
	}
}

var replCommands = []string{"type ", "class ", "method ", "load ", "resolve ", "names", "help", "quit"}

func runRepl(cmd *cobra.Command) error {
	catalog := mirror.NewOpenCatalog()
	resolver := resolve.NewResolver(catalog)
	out := cmd.OutOrStdout()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		var matches []string
		for _, c := range replCommands {
			if strings.HasPrefix(c, line) {
				matches = append(matches, c)
			}
		}
		return matches
	})

	histPath := filepath.Join(os.TempDir(), ".miru_history")
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("miru> ")
		if err != nil {
			return nil // EOF or interrupt ends the session
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		switch verb {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, "type <sig>     parse a type signature")
			fmt.Fprintln(out, "class <sig>    parse a class signature")
			fmt.Fprintln(out, "method <sig>   parse a method signature")
			fmt.Fprintln(out, "load <file>    load a JSON class description")
			fmt.Fprintln(out, "resolve <name> resolve a class by name")
			fmt.Fprintln(out, "names          list loaded class names")
			fmt.Fprintln(out, "quit           leave")
		case "type":
			if node, err := resolver.ParseTypeSignature(rest); err != nil {
				fmt.Fprintln(out, "error:", err)
			} else {
				fmt.Fprintln(out, node)
			}
		case "class":
			if cs, err := resolver.ParseClassSignature(rest); err != nil {
				fmt.Fprintln(out, "error:", err)
			} else {
				fmt.Fprintf(out, "extends %s, %d type parameter(s), %d interface(s)\n",
					cs.SuperClass, len(cs.TypeParameters), len(cs.Interfaces))
			}
		case "method":
			if ms, err := resolver.ParseMethodSignature(rest); err != nil {
				fmt.Fprintln(out, "error:", err)
			} else {
				var params []string
				for _, p := range ms.Parameters {
					params = append(params, p.String())
				}
				fmt.Fprintf(out, "(%s) -> %s\n", strings.Join(params, ", "), ms.ReturnType)
			}
		case "load":
			if desc, err := catalog.LoadFile(rest); err != nil {
				fmt.Fprintln(out, "error:", err)
			} else {
				fmt.Fprintln(out, "loaded", desc.Name)
			}
		case "resolve":
			if node, err := resolver.ResolveClass(rest); err != nil {
				fmt.Fprintln(out, "error:", err)
			} else {
				printClass(cmd, node)
			}
		case "names":
			for _, name := range catalog.Names() {
				fmt.Fprintln(out, name)
			}
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", verb)
		}
	}
}
