// escape - пакет с правилами экранирования значений внутри QR микроформатов.
package escape

import (
	"net/url"
	"strings"
)

// wifiReplacer - обратный слэш обрабатывается первым, поэтому слэши,
// добавленные при экранировании остальных символов, повторно не экранируются.
var wifiReplacer = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
)

// WiFi - экранирует SSID или пароль для записи в формат WIFI:...;
func WiFi(value string) string {
	return wifiReplacer.Replace(value)
}

// Pair - пара ключ-значение query-строки.
type Pair struct {
	Key   string
	Value string
}

// Query - собирает query-строку из пар в переданном порядке.
// Пары с пустым значением пропускаются.
func Query(pairs ...Pair) string {
	var b strings.Builder
	for _, p := range pairs {
		if p.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
