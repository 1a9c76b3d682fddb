package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studytime/internal/db"
	"github.com/balkashynov/studytime/internal/models"
	"github.com/balkashynov/studytime/internal/parser"
	"github.com/balkashynov/studytime/internal/tui"
)

func newStartCommand(a *app) *cobra.Command {
	var noUI bool

	cmd := &cobra.Command{
		Use:   "start <subject>",
		Short: "Begin a study session",
		Long: `Begin a study session on a subject. Opens the interactive timer by default, use --no-ui for a plain start.

Examples:
  studytime start Math          # Start with the interactive timer
  studytime start Math --no-ui  # Start and return to the shell`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			subject, err := a.store.ResolveSubject(strings.Join(args, " "))
			if err != nil {
				printErr(cmd, err)
				return
			}

			session, err := a.store.BeginSession(subject.SubjectID)
			if err != nil {
				printErr(cmd, err)
				return
			}

			out := cmd.OutOrStdout()
			if noUI {
				fmt.Fprintf(out, "⏱️  Started studying %s (session %s)\n", subject.SubjectName, shortID(session.SessionID))
				fmt.Fprintf(out, "Started at: %s\n", session.StartTime.Local().Format("15:04:05"))
				return
			}

			if err := tui.RunTimer(a.store, a.theme, session, *subject, out); err != nil {
				printErr(cmd, err)
			}
		},
	}

	cmd.Flags().BoolVar(&noUI, "no-ui", false, "start without the interactive timer")
	return cmd
}

func newStopCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop [session]",
		Short: "End a running study session",
		Long: `End a running study session. The session can be given by id or id prefix;
without one the only running session is ended.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var ref string
			if len(args) == 1 {
				ref = args[0]
			}

			sessionID, err := pickActiveSession(a.store, ref)
			if err != nil {
				printErr(cmd, err)
				return
			}

			session, err := a.store.EndSession(sessionID)
			if err != nil {
				printErr(cmd, err)
				return
			}

			name := session.SubjectID
			if subject, err := a.store.GetSubject(session.SubjectID); err == nil {
				name = subject.SubjectName
			}
			fmt.Fprintf(cmd.OutOrStdout(), "⏹️  Stopped studying %s\n", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Session duration: %s\n",
				parser.FormatDuration(session.Elapsed(time.Now())))
		},
	}
}

// pickActiveSession maps a user reference to a session id. An empty ref
// picks the only running session; otherwise ref is an id or a unique prefix
// of a running session id, passed through unchanged when nothing matches.
func pickActiveSession(store *db.Store, ref string) (string, error) {
	active, err := store.ActiveSessions()
	if err != nil {
		return "", err
	}

	if ref == "" {
		switch len(active) {
		case 0:
			return "", fmt.Errorf("no study session is running")
		case 1:
			return active[0].SessionID, nil
		default:
			ids := make([]string, len(active))
			for i, s := range active {
				ids[i] = shortID(s.SessionID)
			}
			return "", fmt.Errorf("%d sessions are running (%s), pass the one to stop",
				len(active), strings.Join(ids, ", "))
		}
	}

	var matches []models.Session
	for _, s := range active {
		if s.SessionID == ref {
			return ref, nil
		}
		if strings.HasPrefix(s.SessionID, ref) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		// Let the store report unknown or already ended sessions
		return ref, nil
	case 1:
		return matches[0].SessionID, nil
	default:
		return "", fmt.Errorf("session prefix %q is ambiguous", ref)
	}
}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show running study sessions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			active, err := a.store.ActiveSessions()
			if err != nil {
				printErr(cmd, err)
				return
			}

			out := cmd.OutOrStdout()
			if len(active) == 0 {
				fmt.Fprintln(out, "No study session is running")
				return
			}

			names, err := subjectNames(a.store)
			if err != nil {
				printErr(cmd, err)
				return
			}
			now := time.Now()
			for _, s := range active {
				fmt.Fprintf(out, "⏱️  Studying %s (session %s)\n", names[s.SubjectID], shortID(s.SessionID))
				fmt.Fprintf(out, "Started at: %s\n", s.StartTime.Local().Format("15:04:05"))
				fmt.Fprintf(out, "Elapsed time: %s\n", parser.FormatDuration(s.Elapsed(now)))
			}
		},
	}
}

func newSessionsCommand(a *app) *cobra.Command {
	var subjectRef, since string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List study sessions",
		Long: `List study sessions ordered by start time.

Examples:
  studytime sessions
  studytime sessions --subject Math
  studytime sessions --since "7 days"
  studytime sessions --since 01/09/2024`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			now := time.Now()

			var filter db.SessionFilter
			if subjectRef != "" {
				subject, err := a.store.ResolveSubject(subjectRef)
				if err != nil {
					printErr(cmd, err)
					return
				}
				filter.SubjectID = subject.SubjectID
			}
			from, err := parser.ParseSince(since, now)
			if err != nil {
				printErr(cmd, err)
				return
			}
			filter.Since = from

			sessions, err := a.store.ListSessions(filter)
			if err != nil {
				printErr(cmd, err)
				return
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No study sessions found")
				return
			}

			names, err := subjectNames(a.store)
			if err != nil {
				printErr(cmd, err)
				return
			}
			renderSessionTable(cmd.OutOrStdout(), sessions, names, now, time.Local)
		},
	}

	cmd.Flags().StringVarP(&subjectRef, "subject", "s", "", "only sessions of this subject (id or name)")
	cmd.Flags().StringVar(&since, "since", "", "only sessions started since (today, yesterday, dd/mm/yyyy, 3h, 7 days, 2w)")
	return cmd
}

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total time studied per subject",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rows, err := a.store.Summary()
			if err != nil {
				printErr(cmd, err)
				return
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subjects yet. Add one with 'studytime subject add <name>'.")
				return
			}
			renderSummaryTable(cmd.OutOrStdout(), rows)
		},
	}
}

func subjectNames(store *db.Store) (map[string]string, error) {
	subjects, err := store.ListSubjects()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(subjects))
	for _, s := range subjects {
		names[s.SubjectID] = s.SubjectName
	}
	return names, nil
}
