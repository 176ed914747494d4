package cpfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// PushConfig is the ServerChan WeChat relay configuration. The send key is a
// personal secret; it comes from the config file or the CPFOLIO_SENDKEY
// environment variable, never from code.
type PushConfig struct {
	SendKey  string `toml:"send_key"`
	Endpoint string `toml:"endpoint"`
}

// serverChanResponse is the relevant slice of the relay's reply. Old and new
// API generations disagree on the field name, so both are read.
type serverChanResponse struct {
	Code    *int   `json:"code"`
	Errno   *int   `json:"errno"`
	Message string `json:"message"`
}

// Push sends a title and a markdown body to WeChat through the ServerChan
// relay. A non-zero response code is an error: the relay accepted the HTTP
// call but refused the message.
func (c PushConfig) Push(ctx context.Context, client *http.Client, title, body string) error {
	if c.SendKey == "" {
		return fmt.Errorf("push: no send key configured (set push.send_key or CPFOLIO_SENDKEY)")
	}
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = "https://sctapi.ftqq.com"
	}
	addr := fmt.Sprintf("%s/%s.send", endpoint, c.SendKey)

	form := url.Values{"title": {title}, "desp": {body}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push: %s replied %s", endpoint, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("push: reading reply: %w", err)
	}
	var reply serverChanResponse
	if err := json.Unmarshal(data, &reply); err != nil {
		return fmt.Errorf("push: decoding reply: %w", err)
	}
	if (reply.Code != nil && *reply.Code == 0) || (reply.Errno != nil && *reply.Errno == 0) {
		return nil
	}
	return fmt.Errorf("push: relay refused the message: %s", reply.Message)
}
