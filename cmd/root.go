// Package cmd implements the CLI command structure for the task list.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mbermudez24/To-Do-List-App/internal/config"
	"github.com/mbermudez24/To-Do-List-App/internal/controller"
	"github.com/mbermudez24/To-Do-List-App/internal/logging"
	"github.com/mbermudez24/To-Do-List-App/internal/store"
	"github.com/mbermudez24/To-Do-List-App/internal/task"
	"github.com/mbermudez24/To-Do-List-App/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(os.Stdout)
	}

	// Determine the subcommand. With no args the TUI is the default on a
	// terminal, plain listing otherwise.
	subcommand := ""
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}
	if subcommand == "" {
		if ui.IsTTY(os.Stdout) {
			subcommand = "tui"
		} else {
			subcommand = "ls"
		}
	}

	logger := logging.New(os.Stderr, cfg)
	ctrl := controller.New(store.NewFileStore(cfg.StoreFile), logger)

	switch subcommand {
	case "tui":
		return ui.RunTUI(ctx, ctrl, logger)
	case "ls", "list":
		return lsCommand(ctrl, os.Stdout)
	case "add":
		return addCommand(ctrl, remainingArgs, os.Stdout)
	case "done":
		return doneCommand(ctrl, remainingArgs, os.Stdout, true)
	case "undone":
		return doneCommand(ctrl, remainingArgs, os.Stdout, false)
	case "rm":
		return rmCommand(ctrl, remainingArgs, os.Stdout)
	case "mv":
		return mvCommand(ctrl, remainingArgs, os.Stdout)
	case "version":
		return versionCommand(os.Stdout)
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// lsCommand prints the list in display order with 1-based positions.
func lsCommand(ctrl *controller.Controller, out io.Writer) error {
	tasks := ctrl.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "no tasks")
		return nil
	}
	for i, t := range tasks {
		check := " "
		if t.Completed {
			check = "x"
		}
		fmt.Fprintf(out, "%3d [%s] %s\n", i+1, check, t.Text)
	}
	return nil
}

// addCommand appends a task built from the joined arguments. Whitespace
// only input is silently ignored, matching the interactive behavior.
func addCommand(ctrl *controller.Controller, args []string, out io.Writer) error {
	if _, ok := ctrl.AddTask(strings.Join(args, " ")); ok {
		fmt.Fprintln(out, "ok")
	}
	return nil
}

// doneCommand sets the completion state of the task at the given 1-based
// position. Tasks already in the requested state are left alone.
func doneCommand(ctrl *controller.Controller, args []string, out io.Writer, completed bool) error {
	t, err := taskAt(ctrl, args)
	if err != nil {
		return err
	}
	if t.Completed != completed {
		ctrl.ToggleComplete(t.ID)
	}
	fmt.Fprintln(out, "ok")
	return nil
}

// rmCommand deletes the task at the given 1-based position.
func rmCommand(ctrl *controller.Controller, args []string, out io.Writer) error {
	t, err := taskAt(ctrl, args)
	if err != nil {
		return err
	}
	ctrl.DeleteTask(t.ID)
	fmt.Fprintln(out, "ok")
	return nil
}

// mvCommand moves the task at position from to position to (both
// 1-based). The move goes through the same midpoint reorder policy the
// TUI uses: moving down drops below the target's midpoint, moving up
// above it.
func mvCommand(ctrl *controller.Controller, args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: todolist mv <from> <to>")
	}
	from, err := parsePosition(ctrl, args[0])
	if err != nil {
		return err
	}
	to, err := parsePosition(ctrl, args[1])
	if err != nil {
		return err
	}
	if from == to {
		fmt.Fprintln(out, "ok")
		return nil
	}

	dragged := ctrl.At(from)
	target := ctrl.At(to)
	const top, height = 0, 2
	pointerY := top
	if to > from {
		pointerY = top + height - 1
	}
	ctrl.Reorder(dragged.ID, target.ID, pointerY, top, height)
	fmt.Fprintln(out, "ok")
	return nil
}

// taskAt resolves a single positional argument to a task.
func taskAt(ctrl *controller.Controller, args []string) (*task.Task, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("task number required")
	}
	i, err := parsePosition(ctrl, args[0])
	if err != nil {
		return nil, err
	}
	return ctrl.At(i), nil
}

// parsePosition parses a 1-based display position into a list index.
func parsePosition(ctrl *controller.Controller, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", arg)
	}
	if n < 1 || n > ctrl.Len() {
		return 0, fmt.Errorf("task number out of range: %d", n)
	}
	return n - 1, nil
}

func versionCommand(out io.Writer) error {
	fmt.Fprintf(out, "todolist version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todolist - A small persistent to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todolist [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui             Launch terminal UI (default on a terminal)")
	fmt.Fprintln(w, "  ls              List tasks in display order")
	fmt.Fprintln(w, "  add <text...>   Add a task")
	fmt.Fprintln(w, "  done <n>        Mark task n completed")
	fmt.Fprintln(w, "  undone <n>      Mark task n not completed")
	fmt.Fprintln(w, "  rm <n>          Delete task n")
	fmt.Fprintln(w, "  mv <from> <to>  Move a task to another position")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
