package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/AnyUserName/printprep-cli/internal/discovery"
	"github.com/AnyUserName/printprep-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

type choiceKind int

const (
	choiceExit choiceKind = iota
	choiceFolder
	choiceAll
	choiceDryRun
)

type choice struct {
	kind   choiceKind
	folder string
}

// menu is the numbered folder menu of interactive mode. Folders are numbered
// from 1, followed by "process all" and "dry run"; 0 exits.
type menu struct {
	folders []discovery.TopFolder
	in      io.Reader
	out     io.Writer
}

func (m menu) show() {
	fmt.Fprintln(m.out, "Interactive Image Processing Mode")
	fmt.Fprintln(m.out, strings.Repeat("=", 40))
	fmt.Fprintln(m.out, "Available folders:")
	for i, f := range m.folders {
		fmt.Fprintf(m.out, "  %d. %s (%d images)\n", i+1, f.Name, f.Images)
	}
	n := len(m.folders)
	fmt.Fprintf(m.out, "  %d. Process all folders\n", n+1)
	fmt.Fprintf(m.out, "  %d. Dry run (show what would be processed)\n", n+2)
	fmt.Fprintln(m.out, "  0. Exit")
}

// ask prompts until a valid option is entered. End of input and
// cancellation of ctx both exit.
func (m menu) ask(ctx context.Context) choice {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(m.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	n := len(m.folders)
	for {
		fmt.Fprintf(m.out, "\nSelect option (0-%d): ", n+2)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(m.out, "\nExiting...")
			return choice{kind: choiceExit}
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(m.out, "\nExiting...")
				return choice{kind: choiceExit}
			}
			line = l
		}

		num, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil:
			fmt.Fprintln(m.out, "Invalid input. Please enter a number.")
		case num == 0:
			fmt.Fprintln(m.out, "Exiting...")
			return choice{kind: choiceExit}
		case num == n+1:
			return choice{kind: choiceAll}
		case num == n+2:
			return choice{kind: choiceDryRun}
		case num >= 1 && num <= n:
			return choice{kind: choiceFolder, folder: m.folders[num-1].Name}
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

func runInteractive(cmd *cobra.Command, formats pipeline.Filter) error {
	folders, err := discovery.TopLevel(cfg.SourceDir, formats, cfg.DestinationSuffix)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	m := menu{folders: folders, in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
	m.show()

	c := m.ask(ctx)
	switch c.kind {
	case choiceFolder:
		return convert(cmd, c.folder, formats)
	case choiceAll:
		fmt.Fprintln(cmd.OutOrStdout(), "Processing all folders...")
		return convert(cmd, "", formats)
	case choiceDryRun:
		return dryRun(cmd, formats)
	}
	return nil
}
