// Package qrcode renders share codes that point at public listing pages.
package qrcode

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

type Generator struct {
	BaseURL string
	Size    int
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{BaseURL: strings.TrimRight(baseURL, "/"), Size: DefaultSize}
}

// PageURL joins path onto the public base URL.
func (g *Generator) PageURL(path string) (string, error) {
	base, err := url.Parse(g.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid public base url %q", g.BaseURL)
	}
	return base.JoinPath(path).String(), nil
}

// PNG encodes a QR code for the page at path.
func (g *Generator) PNG(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("empty page path")
	}
	target, err := g.PageURL(path)
	if err != nil {
		return nil, err
	}
	size := g.Size
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(target, qrcode.Medium, size)
}
