package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/navaro-app/navaro-api/internal/config"
)

const fcmEndpoint = "https://fcm.googleapis.com/fcm/send"

type PushSender struct {
	serverKey string
	client    *http.Client
}

// NewPushSender devolve nil quando não há chave FCM configurada.
func NewPushSender(cfg *config.Config) *PushSender {
	if cfg.FCMServerKey == "" {
		return nil
	}
	return &PushSender{
		serverKey: cfg.FCMServerKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *PushSender) Send(token, title, body string, data map[string]any) error {
	payload := map[string]any{
		"to": token,
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
	}
	if len(data) > 0 {
		payload["data"] = data
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, fcmEndpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+p.serverKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("fcm responded %d", resp.StatusCode)
	}
	return nil
}
