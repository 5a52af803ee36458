package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"todo-assistant/internal/app"
	"todo-assistant/internal/assistant"
	"todo-assistant/internal/model"
	userRepo "todo-assistant/internal/user/repository"
	userSQL "todo-assistant/internal/user/repository/sqldb"
)

var (
	askUser      string
	askAudioPath string
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Send a request to the assistant on behalf of a user",
	Long: `Send a natural-language request to the assistant and store the
resulting task lists, tasks and subtasks for the given user.

Examples:
  todoctl ask --user alice "Remind me to call mom on Sunday, add it to Family"
  todoctl ask --user alice --audio memo.m4a`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askUser, "user", "u", "", "username the request acts for (required)")
	askCmd.Flags().StringVar(&askAudioPath, "audio", "", "audio file to transcribe instead of a text question")
	askCmd.Flags().BoolVarP(&askJSON, "json", "j", false, "print the raw result as JSON")
	_ = askCmd.MarkFlagRequired("user")
}

func runAsk(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (askAudioPath == "") {
		return errors.New("pass either a question or --audio")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	deps, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	u, err := userSQL.New(deps.DB, deps.Driver, deps.Logger).
		GetOneUser(ctx, userRepo.GetOneUserOptions{Username: askUser})
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if u.ID == 0 {
		return fmt.Errorf("user %q not found", askUser)
	}
	sc := model.Scope{UserID: u.ID, Username: u.Username}

	uc, err := deps.Assistant()
	if err != nil {
		return err
	}

	var out assistant.AskOutput
	if askAudioPath != "" {
		f, err := os.Open(askAudioPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out, err = uc.AskSpeech(ctx, sc, assistant.SpeechInput{Audio: f, Filename: filepath.Base(askAudioPath)})
		if err != nil {
			return err
		}
	} else {
		out, err = uc.Ask(ctx, sc, assistant.AskInput{Question: args[0]})
		if err != nil {
			return err
		}
	}

	if askJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printOutput(cmd.OutOrStdout(), out)
	return nil
}

func printOutput(w io.Writer, out assistant.AskOutput) {
	if out.Transcript != "" {
		fmt.Fprintf(w, "Heard: %s\n", out.Transcript)
	}
	if out.Status == assistant.StatusError {
		fmt.Fprintf(w, "Assistant declined: %s\n", out.ErrorMessage)
		return
	}

	p := out.Proposal
	fmt.Fprintf(w, "Task lists (%d)\n", len(p.TaskLists))
	for _, tl := range p.TaskLists {
		fmt.Fprintf(w, "  #%d %s\n", tl.ID, tl.Name)
	}
	fmt.Fprintf(w, "Tasks (%d)\n", len(p.Tasks))
	for _, t := range p.Tasks {
		line := fmt.Sprintf("  #%d %s", t.ID, t.Name)
		if t.Starred {
			line += " *"
		}
		if !t.Due.IsZero() {
			line += " due " + t.Due.String()
		}
		if t.Priority != nil {
			line += fmt.Sprintf(" p%d", *t.Priority)
		}
		if len(t.TaskListNames) > 0 {
			line += " [" + strings.Join(t.TaskListNames, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Subtasks (%d)\n", len(p.Subtasks))
	for _, s := range p.Subtasks {
		fmt.Fprintf(w, "  #%d %s (under %s)\n", s.ID, s.Name, s.ParentTaskName)
	}
}
