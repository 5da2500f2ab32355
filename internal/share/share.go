// Package share builds canonical share links and renders them as QR codes.
package share

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/jonesrussell/creator-studio/internal/logger"
)

// Config holds QR rendering parameters.
type Config struct {
	BaseURL    string
	Size       int    // output size in pixels
	Foreground string // hex color, e.g. "#000000"
	Background string // hex color, e.g. "#ffffff"
}

// Link is a generated share link. QRPNGBase64 is empty when QR encoding
// failed; the link itself is still usable.
type Link struct {
	URL         string `json:"url"`
	QRPNGBase64 string `json:"qr_png_base64,omitempty"`
}

// Service generates share links.
type Service struct {
	cfg Config
	log logger.Logger
}

// NewService creates a share link service.
func NewService(cfg Config, log logger.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// Generate builds the canonical share URL for path and renders its QR code.
// QR failures are non-fatal: the returned link carries an empty QR field.
func (s *Service) Generate(path string) (Link, error) {
	shareURL, err := s.buildURL(path)
	if err != nil {
		return Link{}, err
	}

	link := Link{URL: shareURL}

	png, err := s.encodeQR(shareURL)
	if err != nil {
		s.log.Error("QR encoding failed, returning link without QR",
			logger.String("url", shareURL),
			logger.Error(err),
		)
		return link, nil
	}

	link.QRPNGBase64 = base64.StdEncoding.EncodeToString(png)
	return link, nil
}

func (s *Service) buildURL(path string) (string, error) {
	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse share base URL: %w", err)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base.JoinPath(path).String(), nil
}

func (s *Service) encodeQR(content string) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("build qr code: %w", err)
	}

	fg, err := parseHexColor(s.cfg.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground color: %w", err)
	}
	bg, err := parseHexColor(s.cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}
	qr.ForegroundColor = fg
	qr.BackgroundColor = bg

	png, err := qr.PNG(s.cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("render qr png: %w", err)
	}
	return png, nil
}

// parseHexColor parses "#rrggbb" into an opaque color.
func parseHexColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
