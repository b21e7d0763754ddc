package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

// printResult writes strings verbatim and everything else as indented JSON.
func printResult(w io.Writer, v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func message(s string) models.Message { return models.Message{Message: s} }

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, s := range args {
		id, err := parseID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// readLine prompts on stderr and reads one line from the command's input.
func (a *app) readLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	if a.in == nil {
		a.in = bufio.NewReader(cmd.InOrStdin())
	}
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(prompt), ":"), err)
	}
	return strings.TrimSpace(line), nil
}

// readSecret returns value when set, otherwise prompts. Input is not echoed
// when stdin is a terminal.
func (a *app) readSecret(cmd *cobra.Command, prompt, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		pass, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		return string(pass), err
	}
	return a.readLine(cmd, prompt)
}
