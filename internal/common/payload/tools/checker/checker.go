// checker - пакет с функциями синтаксической проверки полей формы.
package checker

import (
	"net/url"
	"regexp"

	"github.com/asaskevich/govalidator"
	"golang.org/x/net/idna"
)

// numberPattern - десятичное число с необязательной дробной частью и экспонентой.
// Шестнадцатеричная запись, Inf и NaN не допускаются.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// IsURL - проверяет, что строка является URL со схемой и хостом.
func IsURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	// для web-схем дополнительно проверяю синтаксис хоста, длина URL не ограничивается
	if isWebScheme(u.Scheme) {
		return isHost(u.Hostname())
	}
	return true
}

// isHost - проверяет, что строка является IP адресом или DNS именем, в том числе интернационализированным.
func isHost(host string) bool {
	if host == "" {
		return false
	}
	if govalidator.IsIP(host) {
		return true
	}
	ascii, err := idna.ToASCII(host)
	if err != nil {
		return false
	}
	return govalidator.IsDNSName(ascii)
}

func isWebScheme(scheme string) bool {
	switch scheme {
	case "http", "https", "ftp", "ws", "wss":
		return true
	}
	return false
}

// IsEmail - проверяет, что строка является адресом электронной почты без отображаемого имени.
func IsEmail(raw string) bool {
	if raw == "" {
		return false
	}
	return govalidator.IsEmail(raw)
}

// IsNumeric - проверяет, что строка является десятичным числом.
func IsNumeric(raw string) bool {
	return numberPattern.MatchString(raw)
}

// InRange - проверяет, что значение лежит в отрезке [min, max].
func InRange(value, min, max float64) bool {
	return value >= min && value <= max
}
