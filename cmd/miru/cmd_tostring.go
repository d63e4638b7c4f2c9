package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miru-lang/miru/format"
	"github.com/miru-lang/miru/mirror"
	"github.com/miru-lang/miru/resolve"
	"github.com/miru-lang/miru/transform"
)

func newToStringCmd() *cobra.Command {
	opts := transform.DefaultOptions()

	cmd := &cobra.Command{
		Use:           "tostring <class-description.json>...",
		Short:         "Generate a toString method for each class and print it",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := mirror.NewOpenCatalog()
			var names []string
			for _, path := range args {
				desc, err := catalog.LoadFile(path)
				if err != nil {
					return err
				}
				names = append(names, desc.Name)
			}

			resolver := resolve.NewResolver(catalog)
			out := cmd.OutOrStdout()
			var diags transform.Diagnostics
			for _, name := range names {
				node, err := resolver.ResolveClass(name)
				if err != nil {
					return err
				}
				before := len(diags.Errors())
				transform.CreateToString(node, opts, &diags)
				if len(diags.Errors()) > before {
					continue
				}
				for _, m := range node.DeclaredMethods("toString") {
					fmt.Fprint(out, format.MethodString(m))
				}
			}
			for _, d := range diags.Errors() {
				fmt.Fprintln(cmd.ErrOrStderr(), d)
			}
			if diags.HasErrors() {
				return fmt.Errorf("%d class(es) failed", len(diags.Errors()))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.IncludeSuper, "include-super", opts.IncludeSuper, "append a super element")
	flags.BoolVar(&opts.IncludeSuperProperties, "include-super-properties", opts.IncludeSuperProperties, "flatten in superclass properties")
	flags.BoolVar(&opts.IncludeSuperFields, "include-super-fields", opts.IncludeSuperFields, "flatten in superclass fields")
	flags.BoolVar(&opts.Cache, "cache", opts.Cache, "memoize the computed string")
	flags.StringSliceVar(&opts.Excludes, "excludes", opts.Excludes, "property names to exclude")
	flags.StringSliceVar(&opts.Includes, "includes", opts.Includes, "property names to include, in order")
	flags.StringVar(&opts.LeftDelimiter, "left", opts.LeftDelimiter, "left delimiter")
	flags.StringVar(&opts.RightDelimiter, "right", opts.RightDelimiter, "right delimiter")
	flags.StringVar(&opts.NameValueSeparator, "name-value-sep", opts.NameValueSeparator, "name/value separator")
	flags.StringVar(&opts.FieldSeparator, "field-sep", opts.FieldSeparator, "field separator")
	flags.BoolVar(&opts.IncludeNames, "include-names", opts.IncludeNames, "prefix values with their property name")
	flags.BoolVar(&opts.IncludeFields, "include-fields", opts.IncludeFields, "include plain fields")
	flags.BoolVar(&opts.IgnoreNulls, "ignore-nulls", opts.IgnoreNulls, "skip null values entirely")
	flags.BoolVar(&opts.IncludePackage, "include-package", opts.IncludePackage, "use the fully qualified class name")
	flags.BoolVar(&opts.AllProperties, "all-properties", opts.AllProperties, "include getter-backed pseudo-properties")
	flags.BoolVar(&opts.AllNames, "all-names", opts.AllNames, "include internal names")
	flags.BoolVar(&opts.Pojo, "pojo", opts.Pojo, "render values without the runtime helper")
	flags.BoolVar(&opts.UseGetters, "use-getters", opts.UseGetters, "read properties through their getters")

	return cmd
}
