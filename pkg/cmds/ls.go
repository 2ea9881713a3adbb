package cmds

import (
	"fmt"
	"sort"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"src.treesh.dev/pkg/boltfile"
	"src.treesh.dev/pkg/output"
)

type lsOptions struct {
	long      bool
	byName    bool
	byType    bool
	noContent bool
}

func lsCommand(env *Env) *cobra.Command {
	var opts lsOptions
	cmd := &cobra.Command{
		Use:   "ls [PATH]",
		Short: "List group contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ls(env, pathArg(args, 0, "."), opts)
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&opts.long, "long", "l", env.Config.Ls.Long, "show object metadata in a table")
	flags.BoolVar(&opts.byName, "name", false, "sort by name (default)")
	flags.BoolVarP(&opts.byType, "type", "t", false, "sort by object type, groups first")
	flags.BoolVarP(&opts.noContent, "no-content", "c", false, "do not show the content of leaves")
	cmd.MarkFlagsMutuallyExclusive("name", "type")
	return cmd
}

func ls(env *Env, arg string, opts lsOptions) error {
	target := env.Resolve(arg)
	obj, err := env.File.Load(target)
	if err != nil {
		return err
	}
	objects := []boltfile.Object{obj}
	if obj.IsGroup() {
		if objects, err = env.File.Children(target); err != nil {
			return err
		}
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].Path.Name() < objects[j].Path.Name()
	})
	if opts.byType {
		sort.SliceStable(objects, func(i, j int) bool {
			return objects[i].IsGroup() && !objects[j].IsGroup()
		})
	}

	if !opts.long {
		names := make([]string, len(objects))
		for i, obj := range objects {
			names[i] = output.Name(obj.Path.Name(), obj.IsGroup())
		}
		env.Printer.Grid(names)
		return nil
	}

	headers := []string{"NAME", "KIND", "SIZE"}
	if !opts.noContent {
		headers = append(headers, "CONTENT")
	}
	rows := make([][]string, len(objects))
	for i, obj := range objects {
		row := []string{output.Name(obj.Path.Name(), obj.IsGroup()), obj.Kind.String(), ""}
		if !obj.IsGroup() {
			row[2] = strconv.Itoa(obj.Size)
		}
		if !opts.noContent {
			content := ""
			if !obj.IsGroup() {
				value, err := env.File.Value(obj.Path)
				if err != nil {
					return err
				}
				content = preview(value, previewLength)
			}
			row = append(row, content)
		}
		rows[i] = row
	}
	env.Printer.Table(headers, rows)
	return nil
}

const previewLength = 40

// Returns a one-line preview of a value: the text itself if it is printable,
// otherwise its first bytes in hex.
func preview(value []byte, n int) string {
	if isText(value) {
		runes := []rune(string(value))
		for i, r := range runes {
			if r == '\n' || r == '\t' {
				runes[i] = ' '
			}
		}
		if len(runes) > n {
			return string(runes[:n-1]) + "…"
		}
		return string(runes)
	}
	if len(value) > n/3 {
		return fmt.Sprintf("% x …", value[:n/3])
	}
	return fmt.Sprintf("% x", value)
}

func isText(value []byte) bool {
	if !utf8.Valid(value) {
		return false
	}
	for _, r := range string(value) {
		if !unicode.IsPrint(r) && r != '\n' && r != '\t' {
			return false
		}
	}
	return true
}
