package notify

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"ogkort/config"
)

// NtfySender sends push notifications via ntfy.sh
type NtfySender struct {
	cfg *config.Config
}

// NtfyMessage represents a ntfy notification
type NtfyMessage struct {
	Title    string
	Message  string
	Priority int
	Tags     string
}

// NewNtfySender creates a new ntfy sender
func NewNtfySender(cfg *config.Config) *NtfySender {
	return &NtfySender{cfg: cfg}
}

// SendBuildFailure notifies that a build left entries without images.
// A disabled sender is a silent no-op so callers never branch on it.
func (n *NtfySender) SendBuildFailure(failed int, firstEntry string) error {
	if !n.cfg.Ntfy.Enabled {
		return nil
	}

	message := fmt.Sprintf("%d card(s) failed to generate", failed)
	if firstEntry != "" {
		message = fmt.Sprintf("%s, first: %s", message, firstEntry)
	}

	return n.send(NtfyMessage{
		Title:    "ogkort build failures",
		Message:  message,
		Priority: 4,
		Tags:     "warning,frame_with_picture",
	})
}

// send posts a notification: message as body, metadata as headers, per
// the ntfy publish documentation.
func (n *NtfySender) send(msg NtfyMessage) error {
	url := fmt.Sprintf("%s/%s", n.cfg.Ntfy.Server, n.cfg.Ntfy.Topic)

	req, err := http.NewRequest("POST", url, strings.NewReader(msg.Message))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Title", msg.Title)
	req.Header.Set("Priority", fmt.Sprintf("%d", msg.Priority))
	req.Header.Set("Tags", msg.Tags)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ntfy returned status %d", resp.StatusCode)
	}

	log.Printf("📱 ntfy notification sent: %s", msg.Title)
	return nil
}
