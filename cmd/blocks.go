package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/blocksim/block"
)

// blocksCmd lists the registered block kinds and their parameters
var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List registered blocks, element types and parameters",
	Run: func(cmd *cobra.Command, args []string) {
		if err := printBlocks(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// printBlocks writes every registered kind with its element types and the
// parameters of its first element type's instance.
func printBlocks(w io.Writer) error {
	for _, kind := range block.Kinds() {
		elems := block.ElementTypes(kind)
		if len(elems) == 0 {
			continue
		}
		b, err := block.New(kind, elems[0], "", nil)
		if err != nil {
			return fmt.Errorf("instantiating %s: %w", kind, err)
		}
		fmt.Fprintf(w, "%s: %s\n", kind, b.Description())
		fmt.Fprintf(w, "  types: %s\n", strings.Join(elems, ", "))
		for _, p := range b.Ports() {
			fmt.Fprintf(w, "  port:  %s\n", p)
		}
		for _, p := range b.Parameters() {
			d := p.Descriptor()
			unit := ""
			if d.Unit != "" {
				unit = " [" + d.Unit + "]"
			}
			fmt.Fprintf(w, "  param: %-20s default=%v%s  %s\n", d.Name, p.Get(), unit, d.Display)
		}
	}
	return nil
}
