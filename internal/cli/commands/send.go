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

type sendCmd struct{}

func (sendCmd) Name() string        { return "send" }
func (sendCmd) Description() string { return "Send a voice message to a user" }
func (sendCmd) Usage() string {
	return "send <receiver_id> <audio_path> [--media <path>] [note...]"
}

func (sendCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
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

	files := []api.FileArg{{Field: "audio_file", Path: args[1]}}
	rest := args[2:]
	if len(rest) >= 2 && rest[0] == "--media" {
		files = append(files, api.FileArg{Field: "media_file", Path: rest[1]})
		rest = rest[2:]
	}

	fields := map[string]string{
		"sender_id":   strconv.FormatInt(sess.UserID, 10),
		"receiver_id": args[0],
	}
	if len(rest) > 0 {
		fields["text_note"] = strings.Join(rest, " ")
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/messages"
	resp, body, err := api.PostMultipart(ctx, endpoint, fields, files...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var out struct {
			Message api.Message `json:"message_data"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Fprintf(Out, "Sent message #%d to user #%d\n", out.Message.ID, out.Message.ReceiverID)
		return nil
	case http.StatusNotFound:
		return errors.New("receiver not found")
	default:
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
}

func init() { RegisterCmd(sendCmd{}) }
