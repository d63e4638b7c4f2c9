package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miru-lang/miru/mirror"
	"github.com/miru-lang/miru/resolve"
)

func newSigCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:           "sig <signature>",
		Short:         "Parse a generic signature and print the resolved type",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// an open catalog stands in for the full classpath
			resolver := resolve.NewResolver(mirror.NewOpenCatalog())
			out := cmd.OutOrStdout()

			switch kind {
			case "type":
				node, err := resolver.ParseTypeSignature(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, node)
			case "class":
				cs, err := resolver.ParseClassSignature(args[0])
				if err != nil {
					return err
				}
				for _, tp := range cs.TypeParameters {
					fmt.Fprintf(out, "type parameter %s\n", tp)
				}
				fmt.Fprintf(out, "extends %s\n", cs.SuperClass)
				for _, iface := range cs.Interfaces {
					fmt.Fprintf(out, "implements %s\n", iface)
				}
			case "method":
				ms, err := resolver.ParseMethodSignature(args[0])
				if err != nil {
					return err
				}
				for _, tp := range ms.TypeParameters {
					fmt.Fprintf(out, "type parameter %s\n", tp)
				}
				for i, param := range ms.Parameters {
					fmt.Fprintf(out, "param %d: %s\n", i, param)
				}
				fmt.Fprintf(out, "returns %s\n", ms.ReturnType)
				for _, ex := range ms.Exceptions {
					fmt.Fprintf(out, "throws %s\n", ex)
				}
			default:
				return fmt.Errorf("unknown signature kind %q (want type, class or method)", kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "type", "signature kind: type, class or method")

	return cmd
}
