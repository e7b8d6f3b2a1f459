package commands

import (
	"GrandLine/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"GrandLine/internal/cli/api"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create a new account" }
func (registerCmd) Usage() string {
	return "register <email> <username> <password> [picture_path]"
}

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	fields := map[string]string{
		"email":    args[0],
		"username": args[1],
		"password": args[2],
	}
	var files []api.FileArg
	if len(args) >= 4 {
		files = append(files, api.FileArg{Field: "profile_picture", Path: args[3]})
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/register"
	resp, body, err := api.PostMultipart(ctx, endpoint, fields, files...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var out struct {
			User api.User `json:"user"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Fprintf(Out, "Registered user #%d (%s)\n", out.User.ID, out.User.Email)
		return nil
	case http.StatusConflict:
		return fmt.Errorf("email already registered")
	default:
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
}

func init() { RegisterCmd(registerCmd{}) }
