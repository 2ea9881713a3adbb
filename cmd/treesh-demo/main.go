// Command treesh-demo writes a bbolt file to try treesh on.
//
// Without --from, a built-in sample tree is written. With --from, the tree is
// read from a YAML or TOML file, where maps become groups and all other
// values become leaves.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"src.treesh.dev/pkg/boltfile"
)

var sampleTree = boltfile.Tree{
	"config": boltfile.Tree{
		"name":    "treesh demo",
		"timeout": "30s",
		"servers": boltfile.Tree{
			"alpha": boltfile.Tree{"addr": "10.0.0.1:8080", "weight": "3"},
			"beta":  boltfile.Tree{"addr": "10.0.0.2:8080", "weight": "1"},
		},
	},
	"users": boltfile.Tree{
		"alice": boltfile.Tree{"email": "alice@example.com", "avatar": []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}},
		"bob":   boltfile.Tree{"email": "bob@example.com"},
	},
	"empty": boltfile.Tree{},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("treesh-demo", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.StringP("output", "o", "demo.db", "the file to write")
	from := fs.String("from", "", "a YAML or TOML file describing the tree")
	force := fs.BoolP("force", "f", false, "overwrite the output file if it exists")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "unexpected arguments:", strings.Join(fs.Args(), " "))
		return 2
	}

	tree := sampleTree
	if *from != "" {
		var err error
		tree, err = readTree(*from)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	if _, err := os.Stat(*output); err == nil {
		if !*force {
			fmt.Fprintf(stderr, "%s exists; use --force to overwrite\n", *output)
			return 1
		}
		if err := os.Remove(*output); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if err := boltfile.Create(*output, tree); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s; run \"treesh %s\" to browse it\n", *output, *output)
	return 0
}

func readTree(name string) (boltfile.Tree, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	switch ext := filepath.Ext(name); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unsupported tree format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", name, err)
	}
	return treeFromMap(m, "")
}

// Converts a decoded document into a Tree. Only maps are allowed at the root.
func treeFromMap(m map[string]any, path string) (boltfile.Tree, error) {
	tree := make(boltfile.Tree, len(m))
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		switch v := m[key].(type) {
		case map[string]any:
			sub, err := treeFromMap(v, path+"/"+key)
			if err != nil {
				return nil, err
			}
			tree[key] = sub
		default:
			if path == "" {
				return nil, fmt.Errorf("/%s: the root can only contain groups", key)
			}
			tree[key] = leafValue(v)
		}
	}
	return tree, nil
}

func leafValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return strings.TrimSuffix(string(b), "\n")
	default:
		return fmt.Sprint(v)
	}
}
