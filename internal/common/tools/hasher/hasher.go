// hasher - пакет со вспомогательными функциями для хэширования данных.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// separator - разделитель частей ключа, байт 0x1f не встречается в данных формы.
const separator = "\x1f"

// Sum - вычисляет SHA-256 от частей, объединенных разделителем, и возвращает хэш в hex виде.
// Разделитель не дает коллизий вида ("ab","c") и ("a","bc").
func Sum(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, separator)))
	return hex.EncodeToString(h[:])
}
