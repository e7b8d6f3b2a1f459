package commands

import (
	"GrandLine/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"GrandLine/internal/cli/api"
	"GrandLine/internal/cli/session"
)

type chatCmd struct{}

func (chatCmd) Name() string        { return "chat" }
func (chatCmd) Description() string { return "Show the conversation with a user" }
func (chatCmd) Usage() string       { return "chat <user_id>" }

func (chatCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return ErrUsage
	}

	store := session.FileStore{Path: cfg.SessionFile}
	sess, err := store.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return errors.New("not logged in, run: login <email> <password>")
		}
		return err
	}

	endpoint := fmt.Sprintf("%s/messages/%d/%s", strings.TrimRight(cfg.ServerURL, "/"), sess.UserID, args[0])
	resp, body, err := api.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}

	var msgs []api.Message
	if err := json.Unmarshal(body, &msgs); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(Out, "No messages yet")
		return nil
	}
	for _, m := range msgs {
		direction := "<-"
		if m.SenderID == sess.UserID {
			direction = "->"
		}
		fmt.Fprintf(Out, "#%d %s %s  audio: %s", m.ID, direction, m.Timestamp, m.AudioURL)
		if m.MediaURL != nil {
			fmt.Fprintf(Out, "  media: %s", *m.MediaURL)
		}
		if m.TextNote != nil {
			fmt.Fprintf(Out, "  note: %s", *m.TextNote)
		}
		fmt.Fprintln(Out)
	}
	return nil
}

func init() { RegisterCmd(chatCmd{}) }
