package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/miru-lang/miru/ast"
	"github.com/miru-lang/miru/mirror"
	"github.com/miru-lang/miru/resolve"
	"github.com/miru-lang/miru/work"
)

func newDumpCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:           "dump <class-description.json>...",
		Short:         "Load class descriptions and print their resolved types",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := mirror.NewCatalog()

			// files decode in parallel, resolution stays single-threaded
			pool := work.NewPool(workers)
			futures := make(map[string]*work.Future, len(args))
			for _, path := range args {
				path := path
				f, err := pool.Submit(func() (any, error) {
					return catalogEntry(path)
				})
				if err != nil {
					return err
				}
				futures[path] = f
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			var names []string
			for _, path := range args {
				result, err := futures[path].Await(ctx)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				desc := result.(*mirror.ClassDescription)
				catalog.Register(desc)
				names = append(names, desc.Name)
			}
			if err := pool.Shutdown(ctx, work.ShutdownGraceful); err != nil {
				return err
			}

			resolver := resolve.NewResolver(catalog)
			for _, name := range names {
				node, err := resolver.ResolveClass(name)
				if err != nil {
					return err
				}
				printClass(cmd, node)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "decode workers (0 = one per CPU)")

	return cmd
}

func catalogEntry(path string) (*mirror.ClassDescription, error) {
	scratch := mirror.NewCatalog()
	desc, err := scratch.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return desc, nil
}

func printClass(cmd *cobra.Command, node *ast.ClassNode) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "class %s\n", node)
	if sc := node.SuperClass(); sc != nil {
		fmt.Fprintf(out, "  extends %s\n", sc)
	}
	for _, iface := range node.Interfaces() {
		fmt.Fprintf(out, "  implements %s\n", iface)
	}
	for _, f := range node.Fields() {
		fmt.Fprintf(out, "  field %s %s\n", f.Type(), f.Name())
	}
	for _, m := range node.Methods() {
		fmt.Fprintf(out, "  method %s\n", m.TypeDescriptor())
	}
	for _, c := range node.Constructors() {
		fmt.Fprintf(out, "  constructor %s\n", c.TypeDescriptor())
	}
}
