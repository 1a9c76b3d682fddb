package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newHelpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show help for studytime or one of its commands",
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				target, _, err := cmd.Root().Find(args)
				if err == nil && target != cmd.Root() {
					target.Help()
					return
				}
			}
			showCustomHelp(cmd.OutOrStdout())
		},
	}
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
 ____  _             _       _   _
/ ___|| |_ _   _  __| |_   _| |_(_)_ __ ___   ___
\___ \| __| | | |/ _' | | | | __| | '_ ' _ \ / _ \
 ___) | |_| |_| | (_| | |_| | |_| | | | | | |  __/
|____/ \__|\__,_|\__,_|\__, |\__|_|_| |_| |_|\___|
                       |___/

studytime - study time tracker

COMMANDS:

  (no command)            Interactive menu
    Main menu:
      1             Begin a new study session
      2             Add a new subject
      3             View study sessions
      4             View summary
      q             Quit (asks first), Q quits at once

    Subjects screen:
      ↑/↓           Navigate subjects
      enter         Start a session on the selected subject
      a / r / d     Add, rename, delete
      s             Cycle sort order

  subject ls              List subjects
  subject add <name>      Add a subject
  subject rename <subject> <new name>
                          Rename a subject
  subject rm <subject>    Delete a subject and all of its sessions
    -y, --yes             Do not ask for confirmation

  start <subject>         Begin a study session
    --no-ui               Start without the interactive timer
  stop [session]          End a running session (the only one if omitted)
  status                  Show running sessions

  sessions                List study sessions
    --subject             Only sessions of this subject
    --since               today, yesterday, dd/mm/yyyy, 3h, 7 days, 2w

  summary                 Total time studied per subject
  version                 Print version information
  help                    Show this help

A <subject> is its id or its name (case-insensitive).

GLOBAL FLAGS:
  -c, --config            Settings file (default config.json)
  -v, --verbose           Log SQL to stderr

`)
}
