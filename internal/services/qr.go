package services

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// QRService renders share codes for user profiles.
type QRService struct{}

func NewQRService() *QRService {
	return &QRService{}
}

// ProfileQR returns a PNG QR code pointing at the given user's profile page.
func (s *QRService) ProfileQR(baseURL string, userID uint, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}

	qr, err := qrcode.New(fmt.Sprintf("%s/users/%d", baseURL, userID), qrcode.Medium)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
