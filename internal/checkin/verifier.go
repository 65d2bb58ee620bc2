// Package checkin детерминированные коды заселения.
// Код выводится из ID бронирования через HMAC-SHA256 и поэтому может быть
// показан клиенту повторно без хранения: один и тот же секрет и ID всегда
// дают один и тот же код.
package checkin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"strings"
)

// CodeLength длина кода заселения в символах
const CodeLength = 8

// Verifier генерирует и проверяет коды заселения
type Verifier struct {
	secret []byte
}

// NewVerifier создает Verifier с заданным секретом (из конфигурации)
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Code возвращает 8-символьный код заселения для бронирования.
// Верхний регистр, алфавит base32 (A-Z, 2-7) - удобно диктовать и вводить.
func (v *Verifier) Code(bookingID int64) string {
	mac := hmac.New(sha256.New, v.secret)

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(bookingID))
	mac.Write(buf[:])

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(mac.Sum(nil))
	return encoded[:CodeLength]
}

// Verify сравнивает введенный код с ожидаемым для бронирования.
// Сравнение за константное время, регистр ввода не важен.
func (v *Verifier) Verify(submitted string, bookingID int64) bool {
	normalized := strings.ToUpper(strings.TrimSpace(submitted))
	if len(normalized) != CodeLength {
		return false
	}
	return hmac.Equal([]byte(normalized), []byte(v.Code(bookingID)))
}
