package commands

import (
	"GrandLine/internal/config"
	"context"
	"errors"
	"fmt"

	"GrandLine/internal/cli/session"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the remembered account" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	store := session.FileStore{Path: cfg.SessionFile}
	sess, err := store.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			fmt.Fprintln(Out, "Not logged in")
			return nil
		}
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s <%s> (#%d)\n", sess.Username, sess.Email, sess.UserID)
	fmt.Fprintf(Out, "Server: %s\n", cfg.ServerURL)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
