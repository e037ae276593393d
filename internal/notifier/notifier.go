// Package notifier delivers milestone messages to the hedaya companion
// app, a small desktop process that shows them as system notifications.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrCompanionNotRunning = errors.New("hedaya-companion is not running")
	ErrMalformedLockfile   = errors.New("companion lockfile is malformed")
)

// Notifier sends text to the companion over its local webhook.
type Notifier struct {
	client *http.Client
}

type WebhookPayload struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{client: &http.Client{Timeout: 3 * time.Second}}
}

func (n *Notifier) Notify(text string) error {
	dir, err := CompanionConfigDir()
	if err != nil {
		return err
	}

	c, err := FindCompanion(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		ID:         uuid.NewString(),
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}
	if err := n.send(c, payload); err != nil {
		return err
	}
	logger.Debug("Notification sent", "id", payload.ID, "pid", c.PID)
	return nil
}

// Nop discards every message. It is used when notifications are disabled.
type Nop struct{}

func (Nop) Notify(string) error { return nil }

// CompanionConfigDir returns the directory holding the companion lockfile.
// The companion may relocate it through lockfile_dir in its settings.json.
func CompanionConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	dir := filepath.Join(configDir, constants.NotifierAppIdentifier)

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		return dir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err == nil {
		if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
			return *store.Settings.LockfileDir, nil
		}
	}
	return dir, nil
}

// Companion is a running companion process as advertised by its lockfile.
type Companion struct {
	Port   int
	PID    int
	Secret string
}

func (c Companion) URL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", c.Port)
}

// ParseLockfile decodes "port|pid|secret".
func ParseLockfile(content string) (Companion, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return Companion{}, fmt.Errorf("%w: expected port|pid|secret", ErrMalformedLockfile)
	}

	var c Companion
	var err error
	if c.Port, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return Companion{}, fmt.Errorf("%w: invalid port number", ErrMalformedLockfile)
	}
	if c.Port < 1 || c.Port > 65535 {
		return Companion{}, fmt.Errorf("%w: port %d outside 1-65535", ErrMalformedLockfile, c.Port)
	}
	if c.PID, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return Companion{}, fmt.Errorf("%w: invalid process ID", ErrMalformedLockfile)
	}
	if c.Secret = strings.TrimSpace(parts[2]); c.Secret == "" {
		return Companion{}, fmt.Errorf("%w: empty secret", ErrMalformedLockfile)
	}
	return c, nil
}

// FindCompanion reads the lockfile and checks that its pid still belongs
// to the companion executable.
func FindCompanion(lockfilePath string) (Companion, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return Companion{}, ErrCompanionNotRunning
	}
	c, err := ParseLockfile(string(content))
	if err != nil {
		return Companion{}, err
	}

	process, err := findProcessFunc(c.PID)
	if err != nil || process == nil {
		return Companion{}, ErrCompanionNotRunning
	}
	if exe := process.Executable(); !strings.HasPrefix(exe, constants.NotifierExecutable) {
		return Companion{}, fmt.Errorf("%w: pid %d belongs to %s", ErrCompanionNotRunning, c.PID, exe)
	}
	return c, nil
}

func (n *Notifier) send(c Companion, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.NotifierSecretHeader, c.Secret)

	res, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("companion unreachable: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("notification rejected with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
