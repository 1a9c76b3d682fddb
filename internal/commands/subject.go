package commands

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studytime/internal/db"
)

func newSubjectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage subjects",
		Long: `Manage the subjects you study.

Examples:
  studytime subject ls
  studytime subject add "Linear Algebra"
  studytime subject rename "linear algebra" "Algebra I"
  studytime subject rm Algebra --yes`,
	}

	cmd.AddCommand(newSubjectListCommand(a))
	cmd.AddCommand(newSubjectAddCommand(a))
	cmd.AddCommand(newSubjectRenameCommand(a))
	cmd.AddCommand(newSubjectRemoveCommand(a))
	return cmd
}

func newSubjectListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List subjects",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			subjects, err := a.store.ListSubjects()
			if err != nil {
				printErr(cmd, err)
				return
			}
			if len(subjects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subjects yet. Add one with 'studytime subject add <name>'.")
				return
			}
			renderSubjectTable(cmd.OutOrStdout(), subjects, time.Local)
		},
	}
}

func newSubjectAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a subject",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			subject, err := a.store.AddSubject(strings.Join(args, " "))
			if err != nil {
				printErr(cmd, err)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Added subject %q (%s)\n", subject.SubjectName, shortID(subject.SubjectID))
		},
	}
}

func newSubjectRenameCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <subject> <new name>",
		Short: "Rename a subject",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			subject, err := a.store.ResolveSubject(args[0])
			if err != nil {
				printErr(cmd, err)
				return
			}
			oldName := subject.SubjectName

			renamed, err := a.store.RenameSubject(subject.SubjectID, strings.Join(args[1:], " "))
			if err != nil {
				printErr(cmd, err)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✏️  Renamed %q to %q\n", oldName, renamed.SubjectName)
		},
	}
}

func newSubjectRemoveCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <subject>",
		Aliases: []string{"delete"},
		Short:   "Delete a subject and all of its sessions",
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			subject, err := a.store.ResolveSubject(strings.Join(args, " "))
			if err != nil {
				printErr(cmd, err)
				return
			}

			if !yes {
				sessions, err := a.store.ListSessions(db.SessionFilter{SubjectID: subject.SubjectID})
				if err != nil {
					printErr(cmd, err)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %q and its %d session(s)? [y/N]: ", subject.SubjectName, len(sessions))
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return
				}
			}

			if err := a.store.DeleteSubject(subject.SubjectID); err != nil {
				printErr(cmd, err)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted subject %q\n", subject.SubjectName)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
