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
)

type usersCmd struct{}

func (usersCmd) Name() string        { return "users" }
func (usersCmd) Description() string { return "List registered users" }
func (usersCmd) Usage() string       { return "users" }

func (usersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/users"
	resp, body, err := api.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}

	var users []api.User
	if err := json.Unmarshal(body, &users); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(Out, "No users registered")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(Out, "#%d  %s  <%s>\n", u.ID, u.Username, u.Email)
	}
	return nil
}

type userCmd struct{}

func (userCmd) Name() string        { return "user" }
func (userCmd) Description() string { return "Show one user's profile" }
func (userCmd) Usage() string       { return "user <id>" }

func (userCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/users/" + args[0]
	resp, body, err := api.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var u api.User
		if err := json.Unmarshal(body, &u); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Fprintf(Out, "#%d  %s  <%s>\n", u.ID, u.Username, u.Email)
		if u.ProfilePictureURL != nil {
			fmt.Fprintf(Out, "Picture: %s\n", *u.ProfilePictureURL)
		}
		fmt.Fprintf(Out, "Joined:  %s\n", u.CreatedAt)
		return nil
	case http.StatusNotFound:
		return errors.New("user not found")
	default:
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
}

func init() {
	RegisterCmd(usersCmd{})
	RegisterCmd(userCmd{})
}
