package cmds

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"src.treesh.dev/pkg/output"
)

func catCommand(env *Env) *cobra.Command {
	var maxBytes int
	cmd := &cobra.Command{
		Use:   "cat PATH",
		Short: "Print the value of a leaf",
		Long: "Print the value of a leaf. Text is printed as is, other values as a hex dump. " +
			"At most --max-bytes bytes are printed; 0 means no limit.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cat(env, args[0], maxBytes)
		},
	}
	cmd.Flags().IntVarP(&maxBytes, "max-bytes", "n", env.Config.Cat.MaxBytes, "maximum number of bytes to print")
	return cmd
}

func cat(env *Env, arg string, maxBytes int) error {
	target := env.Resolve(arg)
	value, err := env.File.Value(target)
	if err != nil {
		return err
	}
	total := len(value)
	if maxBytes > 0 && total > maxBytes {
		value = truncate(value, maxBytes)
	}

	if isText(value) {
		s := string(value)
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		env.Printer.Printf("%s", s)
	} else {
		env.Printer.Printf("%s", hex.Dump(value))
	}
	if len(value) < total {
		fmt.Fprintln(env.Printer.Err, output.Faint(fmt.Sprintf("(%d of %d bytes shown)", len(value), total)))
	}
	return nil
}

// Cuts value to at most n bytes. A cut in the middle of a UTF-8 encoded
// character moves back to the start of that character.
func truncate(value []byte, n int) []byte {
	for cut := n; cut >= 0 && cut > n-utf8.UTFMax; cut-- {
		if utf8.RuneStart(value[cut]) {
			return value[:cut]
		}
	}
	return value[:n]
}
