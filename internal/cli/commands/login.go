package commands

import (
	"GrandLine/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"GrandLine/internal/cli/api"
	"GrandLine/internal/cli/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Verify credentials and remember the account" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/login"
	resp, body, err := api.PostJSON(ctx, endpoint, loginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out struct {
			User api.User `json:"user"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		store := session.FileStore{Path: cfg.SessionFile}
		if err := store.Save(session.Session{
			UserID:   out.User.ID,
			Email:    out.User.Email,
			Username: out.User.Username,
		}); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		fmt.Fprintf(Out, "Logged in as %s (#%d)\n", out.User.Username, out.User.ID)
		return nil
	case http.StatusUnauthorized:
		return errors.New("invalid email or password")
	default:
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
}

func init() { RegisterCmd(loginCmd{}) }
