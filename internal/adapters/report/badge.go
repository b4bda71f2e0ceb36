package report

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// BadgeSize は作業員バッジの QR コードの一辺のピクセル数です。
const BadgeSize = 256

// BadgeContent は QR コードに埋め込む文字列を返します。
func BadgeContent(workerID string) string {
	return "worker:" + workerID
}

// Badge は作業員 ID を埋め込んだ QR コードの PNG を返します。
func Badge(workerID string) ([]byte, error) {
	png, err := qrcode.Encode(BadgeContent(workerID), qrcode.Medium, BadgeSize)
	if err != nil {
		return nil, fmt.Errorf("report: encode badge: %w", err)
	}
	return png, nil
}
