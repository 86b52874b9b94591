package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/skoshiwosh/collager/pkg/collage"
	"github.com/spf13/cobra"
)

// NewPatternsCmd lists both pattern catalogs
func NewPatternsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "list collage patterns",
		Long:  "Lists the quadrant layout (top-left, top-right, bottom-left, bottom-right) of every pattern.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), patternListing())
		},
	}
	return cmd
}

func patternListing() string {
	var sb strings.Builder
	sb.WriteString("pattern indices (N = source, H/V/HV = mirrored):\n")
	for i, p := range collage.Patterns() {
		fmt.Fprintf(&sb, "    %d = %s\n", i, p.Label())
	}
	sb.WriteString("four-box patterns (boxes command):\n")
	for i, p := range collage.BasicPatterns() {
		fmt.Fprintf(&sb, "    %d = %s\n", i, p.Label())
	}
	return sb.String()
}
