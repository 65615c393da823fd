// builder - пакет, который превращает поля формы в содержимое QR-кода.
// Все функции пакета чистые: не обращаются к глобальному состоянию и не выполняют ввод-вывод.
package builder

import (
	"strings"

	"github.com/abezemskiy/qrgen/internal/common/payload/tools/checker"
	"github.com/abezemskiy/qrgen/internal/common/payload/tools/coordinate"
	"github.com/abezemskiy/qrgen/internal/common/payload/tools/escape"
	"github.com/abezemskiy/qrgen/internal/repositories/payload"
)

// Сообщения об ошибках проверки, которые показываются пользователю.
const (
	MsgInvalidURL       = "valid URL required"
	MsgSSIDRequired     = "SSID required"
	MsgPasswordRequired = "password required unless NOPASS"
	MsgTextRequired     = "text required"
	MsgInvalidEmail     = "valid email address required"
	MsgNumberRequired   = "phone number required"
	MsgCoordsRequired   = "both coordinates required"
	MsgCoordsNotNumeric = "coordinates must be numeric"
	MsgCoordsOutOfRange = "coordinates out of range"
)

// PreviewLength - длина превью текста в символах (code points).
const PreviewLength = 120

const (
	encWPA    = "WPA"
	encWPA2   = "WPA2"
	encWEP    = "WEP"
	encNoPass = "NOPASS"

	// токен в строке WIFI: для открытой сети
	noPassToken = "nopass"
)

// Build - нормализует тег типа и строит содержимое QR-кода соответствующего типа.
// Нераспознанный тег обрабатывается как url. При ошибке проверки возвращается *payload.ValidationError
// и пустой ContentPayload.
func Build(rawType string, fields payload.Fields) (payload.ContentPayload, error) {
	return BuildType(payload.ParseType(rawType), fields)
}

// BuildType - строит содержимое QR-кода для уже нормализованного типа.
func BuildType(t payload.Type, fields payload.Fields) (payload.ContentPayload, error) {
	switch t {
	case payload.WIFI:
		return buildWifi(fields)
	case payload.TEXT:
		return buildText(fields)
	case payload.EMAIL:
		return buildEmail(fields)
	case payload.SMS:
		return buildSMS(fields)
	case payload.GEO:
		return buildGeo(fields)
	default:
		return buildURL(fields)
	}
}

func fail(msg string) (payload.ContentPayload, error) {
	return payload.ContentPayload{}, payload.NewValidationError(msg)
}

func field(fields payload.Fields, name string) string {
	return strings.TrimSpace(fields.Get(name))
}

func buildURL(fields payload.Fields) (payload.ContentPayload, error) {
	u := field(fields, payload.FieldURL)
	if !checker.IsURL(u) {
		return fail(MsgInvalidURL)
	}

	return payload.ContentPayload{
		Data: u,
		Meta: payload.Meta{
			{Key: "type", Value: payload.TagURL},
			{Key: "url", Value: u},
		},
	}, nil
}

// normalizeEncryption - приводит токен шифрования к одному из WPA, WPA2, WEP, NOPASS.
func normalizeEncryption(raw string) string {
	enc := strings.ToUpper(raw)
	switch enc {
	case encWPA, encWPA2, encWEP, encNoPass:
		return enc
	default:
		return encWPA
	}
}

// isChecked - флажок формы считается установленным для любого значения, кроме "" и "0".
func isChecked(value string) bool {
	return value != "" && value != "0"
}

func buildWifi(fields payload.Fields) (payload.ContentPayload, error) {
	ssid := field(fields, payload.FieldWifiSSID)
	if ssid == "" {
		return fail(MsgSSIDRequired)
	}

	enc := normalizeEncryption(fields.Get(payload.FieldWifiEncryption))
	token := enc
	if enc == encNoPass {
		token = noPassToken
	}
	withPassword := token != noPassToken

	// пароль не обрезается, пробелы могут быть его частью
	password := fields.Get(payload.FieldWifiPassword)
	if withPassword && password == "" {
		return fail(MsgPasswordRequired)
	}

	hidden := isChecked(fields.Get(payload.FieldWifiHidden))

	var b strings.Builder
	b.WriteString("WIFI:")
	b.WriteString("T:" + token + ";")
	b.WriteString("S:" + escape.WiFi(ssid) + ";")
	if withPassword {
		b.WriteString("P:" + escape.WiFi(password) + ";")
	}
	if hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")

	return payload.ContentPayload{
		Data: b.String(),
		Meta: payload.Meta{
			{Key: "type", Value: payload.TagWIFI},
			{Key: "ssid", Value: ssid},
			{Key: "encryption", Value: enc},
			{Key: "hidden", Value: hidden},
			{Key: "password_set", Value: withPassword},
		},
	}, nil
}

// preview - первые n символов строки без разрыва многобайтовых последовательностей.
func preview(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func buildText(fields payload.Fields) (payload.ContentPayload, error) {
	text := field(fields, payload.FieldText)
	if text == "" {
		return fail(MsgTextRequired)
	}

	return payload.ContentPayload{
		Data: text,
		Meta: payload.Meta{
			{Key: "type", Value: payload.TagTEXT},
			{Key: "preview", Value: preview(text, PreviewLength)},
		},
	}, nil
}

func buildEmail(fields payload.Fields) (payload.ContentPayload, error) {
	address := field(fields, payload.FieldEmailAddress)
	if !checker.IsEmail(address) {
		return fail(MsgInvalidEmail)
	}
	subject := field(fields, payload.FieldEmailSubject)
	body := field(fields, payload.FieldEmailBody)

	mailto := "mailto:" + address
	if query := escape.Query(
		escape.Pair{Key: "subject", Value: subject},
		escape.Pair{Key: "body", Value: body},
	); query != "" {
		mailto += "?" + query
	}

	return payload.ContentPayload{
		Data: mailto,
		Meta: payload.Meta{
			{Key: "type", Value: payload.TagEMAIL},
			{Key: "address", Value: address},
			{Key: "has_subject", Value: subject != ""},
			{Key: "has_body", Value: body != ""},
		},
	}, nil
}

func buildSMS(fields payload.Fields) (payload.ContentPayload, error) {
	number := field(fields, payload.FieldSMSNumber)
	if number == "" {
		return fail(MsgNumberRequired)
	}
	message := field(fields, payload.FieldSMSMessage)

	data := "SMSTO:" + number
	if message != "" {
		data += ":" + message
	}

	return payload.ContentPayload{
		Data: data,
		Meta: payload.Meta{
			{Key: "type", Value: payload.TagSMS},
			{Key: "number", Value: number},
			{Key: "has_message", Value: message != ""},
		},
	}, nil
}

func buildGeo(fields payload.Fields) (payload.ContentPayload, error) {
	lat := field(fields, payload.FieldGeoLat)
	lng := field(fields, payload.FieldGeoLng)
	if lat == "" || lng == "" {
		return fail(MsgCoordsRequired)
	}
	if !checker.IsNumeric(lat) || !checker.IsNumeric(lng) {
		return fail(MsgCoordsNotNumeric)
	}

	// после проверки формата ошибка разбора возможна только при переполнении float64
	latValue, err := coordinate.Parse(lat)
	if err != nil {
		return fail(MsgCoordsOutOfRange)
	}
	lngValue, err := coordinate.Parse(lng)
	if err != nil {
		return fail(MsgCoordsOutOfRange)
	}
	if !checker.InRange(latValue, -90, 90) || !checker.InRange(lngValue, -180, 180) {
		return fail(MsgCoordsOutOfRange)
	}

	return payload.ContentPayload{
		Data: "geo:" + coordinate.Normalize(lat) + "," + coordinate.Normalize(lng),
		Meta: payload.Meta{
			{Key: "type", Value: payload.TagGEO},
			{Key: "lat", Value: latValue},
			{Key: "lng", Value: lngValue},
		},
	}, nil
}
