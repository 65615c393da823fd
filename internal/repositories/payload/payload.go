package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

// Type - тип содержимого QR-кода.
type Type int

const (
	URL Type = iota
	WIFI
	TEXT
	EMAIL
	SMS
	GEO
)

// Теги типов в том виде, в котором они приходят из формы.
const (
	TagURL   = "url"
	TagWIFI  = "wifi"
	TagTEXT  = "text"
	TagEMAIL = "email"
	TagSMS   = "sms"
	TagGEO   = "geo"
)

// Имена полей формы.
const (
	FieldType           = "qr_type"
	FieldURL            = "url"
	FieldWifiSSID       = "wifi_ssid"
	FieldWifiEncryption = "wifi_encryption"
	FieldWifiPassword   = "wifi_password"
	FieldWifiHidden     = "wifi_hidden"
	FieldText           = "text"
	FieldEmailAddress   = "email_address"
	FieldEmailSubject   = "email_subject"
	FieldEmailBody      = "email_body"
	FieldSMSNumber      = "sms_number"
	FieldSMSMessage     = "sms_message"
	FieldGeoLat         = "geo_lat"
	FieldGeoLng         = "geo_lng"
)

// String - возвращает тег типа.
func (t Type) String() string {
	switch t {
	case WIFI:
		return TagWIFI
	case TEXT:
		return TagTEXT
	case EMAIL:
		return TagEMAIL
	case SMS:
		return TagSMS
	case GEO:
		return TagGEO
	default:
		return TagURL
	}
}

// ParseType - нормализует тег из формы в один из шести типов.
// Нераспознанный или пустой тег трактуется как URL, это не ошибка.
func ParseType(raw string) Type {
	switch raw {
	case TagWIFI:
		return WIFI
	case TagTEXT:
		return TEXT
	case TagEMAIL:
		return EMAIL
	case TagSMS:
		return SMS
	case TagGEO:
		return GEO
	default:
		return URL
	}
}

// Fields - плоский набор полей формы. Отсутствующее поле читается как пустая строка.
type Fields map[string]string

// Get - возвращает значение поля или пустую строку.
func (f Fields) Get(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// FieldsFromForm - собирает Fields из значений html формы, берется первое значение каждого ключа.
func FieldsFromForm(values url.Values) Fields {
	fields := make(Fields, len(values))
	for k, v := range values {
		if len(v) == 0 {
			continue
		}
		fields[k] = v[0]
	}
	return fields
}

// MetaField - одна пара ключ-значение метаинформации.
type MetaField struct {
	Key   string
	Value any // string, float64 или bool
}

// Meta - упорядоченная метаинформация о запросе, пригодная для записи в журнал.
type Meta []MetaField

// Get - возвращает значение по ключу.
func (m Meta) Get(key string) (any, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys - ключи в порядке добавления.
func (m Meta) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, f := range m {
		keys = append(keys, f.Key)
	}
	return keys
}

// MarshalJSON - сериализует метаинформацию в json объект с сохранением порядка ключей.
func (m Meta) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal meta key %s error, %w", f.Key, err)
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal meta value %s error, %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ContentPayload - содержимое QR-кода и метаинформация одного запроса.
type ContentPayload struct {
	Data string `json:"data"` // строка, которая кодируется в QR-код
	Meta Meta   `json:"meta"` // метаинформация для журнала, meta.type всегда первый
}

// ValidationError - ошибка проверки введенных пользователем данных.
// Сообщение предназначено для показа пользователю.
type ValidationError struct {
	Message string
}

// NewValidationError - создает ValidationError с сообщением msg.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}
