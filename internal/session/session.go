// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package session keeps the API login cookies between runs. Only cookies are
// stored; fetched query data never touches the disk.
package session

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
)

var (
	// ErrDisabled is returned when STORECTL_CACHE turns storage off.
	ErrDisabled = errors.New("session storage is disabled")
	// ErrNoSession is returned by Read when nothing is stored for a host.
	ErrNoSession = errors.New("not signed in")
)

const subdir = "sessions"

// cookie is the stored form of an http.Cookie. Only the attributes a cookie
// jar needs to send it back are kept.
type cookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitzero"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

// Dir resolves the base cache directory.
// Precedence:
//  1. STORECTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/storectl
//
// Returns ("", false) if a base cannot be resolved.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("STORECTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "storectl"), true
	}
	return "", false
}

// Enabled returns true unless STORECTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("STORECTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Path returns where the session for host lives and whether it exists.
func Path(host string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(base, subdir, encodeKey(host))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Read returns the cookies stored for host.
func Read(host string) ([]*http.Cookie, error) {
	if !Enabled() {
		return nil, ErrDisabled
	}
	p, ok := Path(host)
	if !ok {
		return nil, ErrNoSession
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var stored []cookie
	if err := json.Unmarshal(b, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", p, err)
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			log.Debugf("skipping expired session cookie %s", c.Name)
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	if len(cookies) == 0 {
		return nil, ErrNoSession
	}
	return cookies, nil
}

// Write replaces the cookies stored for host. Creates directories as needed.
func Write(host string, cookies []*http.Cookie) error {
	if !Enabled() {
		return ErrDisabled
	}
	base, ok := Dir()
	if !ok {
		return ErrDisabled
	}

	stored := make([]cookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	b, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	dir := filepath.Join(base, subdir)
	if err := os.MkdirAll(dir, 0o700); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	p := filepath.Join(dir, encodeKey(host))
	if err := os.WriteFile(p, b, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write session: %w", err)
	}
	log.Debugf("wrote session for %s to %s", host, p)
	return nil
}

// Clear removes the session for host. A missing session is not an error.
func Clear(host string) error {
	p, ok := Path(host)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Purge removes sessions older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("session cleaning disabled")
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	root := filepath.Join(base, subdir)
	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed session file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove session file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge sessions: %w", err)
	}
	return nil
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
