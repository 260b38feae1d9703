// Package netx holds network helpers shared by the client.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Probe issues a GET to url and reports whether a server answered. Any
// response below 500 counts as reachable.
func Probe(ctx context.Context, hc *http.Client, url string) error {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("probe %s: %s", url, resp.Status)
	}
	return nil
}
