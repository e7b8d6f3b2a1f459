package commands

import (
	"GrandLine/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"GrandLine/internal/cli/api"
)

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Delete a message and its files" }
func (deleteCmd) Usage() string       { return "delete <message_id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return ErrUsage
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/messages/" + args[0]
	resp, body, err := api.Delete(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Fprintf(Out, "Deleted message #%s\n", args[0])
		return nil
	case http.StatusNotFound:
		return errors.New("message not found")
	default:
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
}

func init() { RegisterCmd(deleteCmd{}) }
