// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves client IPs to ISO country codes using a MaxMind
// GeoLite2-Country database. Lookups degrade gracefully when no database
// is configured.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/oschwald/maxminddb-golang"
)

var privateCIDRs []*net.IPNet

func init() {
	for _, block := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",
		"fe80::/10",
	} {
		_, cidr, err := net.ParseCIDR(block)
		if err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// Lookup resolves IP addresses to country codes.
type Lookup struct {
	mu      sync.RWMutex
	db      *maxminddb.Reader
	enabled bool
}

type geoRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// NewLookup opens the database at dbPath. An empty path returns a disabled
// instance whose Country method always reports no match.
func NewLookup(dbPath string) (*Lookup, error) {
	g := &Lookup{}
	if dbPath == "" {
		return g, nil
	}

	if _, err := os.Stat(dbPath); err != nil {
		return g, fmt.Errorf("GeoIP database: %w", err)
	}

	db, err := maxminddb.Open(dbPath)
	if err != nil {
		return g, fmt.Errorf("opening GeoIP database: %w", err)
	}

	g.db = db
	g.enabled = true
	return g, nil
}

// Enabled reports whether a database is loaded.
func (g *Lookup) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

// Country returns the ISO country code for an IP address, or "" when the
// lookup is disabled, the IP is private/loopback, or no match exists.
func (g *Lookup) Country(ipStr string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.enabled || g.db == nil {
		return ""
	}

	// Strip a port if present.
	if host, _, err := net.SplitHostPort(ipStr); err == nil {
		ipStr = host
	}

	ip := net.ParseIP(ipStr)
	if ip == nil || ip.IsLoopback() || isPrivate(ip) {
		return ""
	}

	var record geoRecord
	if err := g.db.Lookup(ip, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// Close releases the database reader.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.enabled = false
	if g.db != nil {
		err := g.db.Close()
		g.db = nil
		return err
	}
	return nil
}

func isPrivate(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
