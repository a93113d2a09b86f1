package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rkarim/mobiledokan-scraper-go/pkg/errors"
	"go.uber.org/zap"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// TelegramNotifier announces newly scraped products to a Telegram chat.
// Delivery is best-effort: the orchestrator never fails an item over a
// missed notification, and missing credentials simply disable the egress.
type TelegramNotifier struct {
	baseURL    string
	botToken   string
	chatID     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewTelegramNotifier(botToken, chatID string, logger *zap.Logger) *TelegramNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TelegramNotifier{
		baseURL:  defaultAPIBaseURL,
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Enabled reports whether credentials are configured.
func (n *TelegramNotifier) Enabled() bool {
	return n.botToken != "" && n.chatID != ""
}

// Notify sends the new-device announcement. With an image on disk it tries
// sendPhoto with the message as caption and falls back to a plain
// sendMessage when that fails. Returns an error only for logging purposes;
// callers treat any failure as non-fatal.
func (n *TelegramNotifier) Notify(ctx context.Context, deviceName, deviceURL, imagePath string) error {
	if !n.Enabled() {
		n.logger.Warn("Telegram token or chat ID not configured, skipping notification")
		return nil
	}

	message := fmt.Sprintf(
		"🔔 *Found New Devices (MobileDokan)!*\n\n📱 *Name:* %s\n🔗 *Link:* %s",
		deviceName, deviceURL,
	)

	if imagePath != "" {
		if _, err := os.Stat(imagePath); err == nil {
			photoErr := n.sendPhoto(ctx, imagePath, message)
			if photoErr == nil {
				n.logger.Info("Telegram notification with image sent",
					zap.String("device", deviceName))
				return nil
			}
			n.logger.Warn("Failed to send photo to Telegram, sending text only",
				zap.String("device", deviceName),
				zap.Error(photoErr))
		}
	}

	if err := n.sendMessage(ctx, message); err != nil {
		n.logger.Warn("Failed to send Telegram notification",
			zap.String("device", deviceName),
			zap.Error(err))
		return err
	}

	n.logger.Info("Telegram text notification sent",
		zap.String("device", deviceName))
	return nil
}

func (n *TelegramNotifier) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", n.baseURL, n.botToken, method)
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	form := url.Values{
		"chat_id":    {n.chatID},
		"text":       {text},
		"parse_mode": {"Markdown"},
	}

	endpoint := n.methodURL("sendMessage")
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.NewNotifyError("failed to create request", "sendMessage", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return n.do(req, "sendMessage")
}

func (n *TelegramNotifier) sendPhoto(ctx context.Context, imagePath, caption string) error {
	photo, err := os.Open(imagePath)
	if err != nil {
		return errors.NewNotifyError("failed to open image", "sendPhoto", err)
	}
	defer photo.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("photo", filepath.Base(imagePath))
	if err != nil {
		return errors.NewNotifyError("failed to build multipart body", "sendPhoto", err)
	}
	if _, err := io.Copy(part, photo); err != nil {
		return errors.NewNotifyError("failed to read image", "sendPhoto", err)
	}
	_ = writer.WriteField("chat_id", n.chatID)
	_ = writer.WriteField("caption", caption)
	_ = writer.WriteField("parse_mode", "Markdown")
	if err := writer.Close(); err != nil {
		return errors.NewNotifyError("failed to finalize multipart body", "sendPhoto", err)
	}

	endpoint := n.methodURL("sendPhoto")
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &body)
	if err != nil {
		return errors.NewNotifyError("failed to create request", "sendPhoto", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return n.do(req, "sendPhoto")
}

func (n *TelegramNotifier) do(req *http.Request, method string) error {
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errors.NewNotifyError("request failed", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return errors.NewNotifyError(
			fmt.Sprintf("Telegram API error: %s: %s", resp.Status, string(bodyBytes)),
			method, nil,
		)
	}
	return nil
}
