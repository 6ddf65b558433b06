package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rigdoc"
)

// fmtCommand creates the fmt command for normalizing rig documents. A
// document written by another tool round-trips through the store, coming out
// with canonical ordering and explicit rest fields.
func (c *CLI) fmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <rig.toml>",
		Short: "Normalize a rig document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(args[0], write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file instead of printing to stdout")

	return cmd
}

func runFmt(path string, write bool) error {
	store, err := rigdoc.ImportRig(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := rigdoc.WriteRig(store, &buf); err != nil {
		return err
	}

	if !write {
		fmt.Print(buf.String())
		return nil
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Formatted %s", path)
	return nil
}
