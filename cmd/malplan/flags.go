package main

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/mmcdole/malplan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cliOptions holds the parsed command line
type cliOptions struct {
	save         bool
	user         string
	list         listValue
	sort         sortValue
	noCache      bool
	ignoreConfig bool
	filter       string
}

// runFunc is invoked once the command line parsed successfully
type runFunc func(ctx context.Context, opts *cliOptions) error

// newRootCmd builds the malplan command. run is not called for --help or --version.
func newRootCmd(run runFunc) (*cobra.Command, *cliOptions) {
	opts := &cliOptions{
		list: listValue{kind: domain.ListManga},
		sort: sortValue{dir: domain.SortDesc},
	}

	cmd := &cobra.Command{
		Use:   "malplan",
		Short: "malplan - triage your MyAnimeList plan-to-read list",
		Long: `malplan fetches the finished entries of your MyAnimeList plan-to-read list
and asks about each one in turn: d obtained, e not found, n not finished,
s skip, o open the page, h help, q quit. Decisions are remembered, so an entry is only asked
about again once it leaves and re-enters the list. The fetched list is cached
for three days.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &domain.ArgumentError{Arg: args[0]}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&opts.save, "save", "s", false, "save the user to the config file")
	flags.StringVarP(&opts.user, "user", "u", "", "MyAnimeList user name (overrides the config file)")
	flags.VarP(&opts.list, "list", "l", "list to triage: manga or anime")
	flags.VarPF(&presetValue[domain.ListKind]{target: &opts.list.kind, value: domain.ListManga}, "manga", "m", "shorthand for --list manga").NoOptDefVal = "true"
	flags.VarPF(&presetValue[domain.ListKind]{target: &opts.list.kind, value: domain.ListAnime}, "anime", "a", "shorthand for --list anime").NoOptDefVal = "true"
	flags.Var(&opts.sort, "sort", "order by chapter count: asc or desc")
	flags.VarPF(&presetValue[domain.SortDirection]{target: &opts.sort.dir, value: domain.SortAsc}, "asc", "", "shorthand for --sort asc").NoOptDefVal = "true"
	flags.VarPF(&presetValue[domain.SortDirection]{target: &opts.sort.dir, value: domain.SortDesc}, "desc", "", "shorthand for --sort desc").NoOptDefVal = "true"
	flags.BoolVarP(&opts.noCache, "no-cache", "n", false, "ignore the cached list and fetch it again")
	flags.BoolVarP(&opts.ignoreConfig, "ignore-config", "i", false, "do not read the config file")
	flags.StringVarP(&opts.filter, "filter", "f", "", "only ask about titles fuzzy-matching this query")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		switch {
		case opts.list.err != nil:
			return opts.list.err
		case opts.sort.err != nil:
			return opts.sort.err
		default:
			return argumentError(err)
		}
	})

	return cmd, opts
}

// execute runs cmd on args after dropping a trailing value flag that has no value
func execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	// cobra reads os.Args when given nil
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(trimDanglingValue(args, cmd.Flags()))
	return cmd.ExecuteContext(ctx)
}

// trimDanglingValue removes a value flag given as the last argument
// ("--user", "-u", or the final letter of a bundle like "-su"); the flag then
// keeps its default instead of failing the parse.
func trimDanglingValue(args []string, flags *pflag.FlagSet) []string {
	if len(args) == 0 {
		return args
	}
	last := args[len(args)-1]
	head := slices.Clip(args[:len(args)-1])

	switch {
	case strings.HasPrefix(last, "--"):
		name := last[2:]
		if takesValue(flags.Lookup(name)) {
			return head
		}

	case strings.HasPrefix(last, "-") && len(last) > 1:
		letters := last[1:]
		for i, c := range letters {
			if c >= 0x80 {
				return args
			}
			if !takesValue(flags.ShorthandLookup(string(c))) {
				continue
			}
			// a value shorthand swallows the rest of the bundle as its value
			if i < len(letters)-1 {
				return args
			}
			if rest := last[:len(last)-1]; rest != "-" {
				return append(head, rest)
			}
			return head
		}
	}
	return args
}

func takesValue(f *pflag.Flag) bool {
	return f != nil && f.NoOptDefVal == ""
}

// argumentError converts a pflag parse error into a domain.ArgumentError
func argumentError(err error) error {
	msg := err.Error()
	if arg, ok := strings.CutPrefix(msg, "unknown flag: "); ok {
		return &domain.ArgumentError{Arg: arg}
	}
	if arg, ok := strings.CutPrefix(msg, "unknown shorthand flag: "); ok {
		return &domain.ArgumentError{Arg: arg}
	}
	return &domain.ArgumentError{Reason: msg}
}

// listValue is the --list flag. The last parse error is kept so the typed
// error reaches the caller instead of pflag's message.
type listValue struct {
	kind domain.ListKind
	err  error
}

func (v *listValue) String() string { return v.kind.Prefix() }
func (v *listValue) Type() string   { return "manga|anime" }

func (v *listValue) Set(s string) error {
	kind, err := domain.ParseListKind(s)
	if err != nil {
		v.err = err
		return err
	}
	v.kind = kind
	return nil
}

// sortValue is the --sort flag
type sortValue struct {
	dir domain.SortDirection
	err error
}

func (v *sortValue) String() string { return v.dir.String() }
func (v *sortValue) Type() string   { return "asc|desc" }

func (v *sortValue) Set(s string) error {
	dir, err := domain.ParseSortDirection(s)
	if err != nil {
		v.err = err
		return err
	}
	v.dir = dir
	return nil
}

// presetValue is a switch that stores a fixed value in a shared target,
// so --manga and --list anime, or --asc and --desc, override each other in order.
type presetValue[T any] struct {
	target *T
	value  T
}

func (v *presetValue[T]) String() string { return "false" }
func (v *presetValue[T]) Type() string   { return "bool" }

func (v *presetValue[T]) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*v.target = v.value
	}
	return nil
}
