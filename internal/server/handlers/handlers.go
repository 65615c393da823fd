package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abezemskiy/qrgen/internal/common/payload/builder"
	"github.com/abezemskiy/qrgen/internal/common/tools/id"
	"github.com/abezemskiy/qrgen/internal/repositories/journal"
	"github.com/abezemskiy/qrgen/internal/repositories/payload"
	"github.com/abezemskiy/qrgen/internal/repositories/render"
	"github.com/abezemskiy/qrgen/internal/server/logger"
	"github.com/abezemskiy/qrgen/internal/server/metrics"
	"github.com/abezemskiy/qrgen/internal/server/web"
	"go.uber.org/zap"
)

// Имена полей формы с параметрами отрисовки.
const (
	fieldSize   = "size"
	fieldMargin = "margin"
	fieldECC    = "ecc"
)

// Сообщения, которые показываются пользователю при ошибках внешних сервисов.
const (
	MsgRenderFailed  = "QR code was not created, the rendering service is unavailable"
	MsgJournalFailed = "QR code was created, but the request could not be written to the database"
)

var pageTemplate = template.Must(template.ParseFS(web.Templates, "templates/index.html"))

// Option - элемент выпадающего списка формы.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Result - результат успешного построения QR-кода.
type Result struct {
	Image template.URL // PNG в виде data URI, пустое если отрисовка не удалась
	Data  string       // строка, закодированная в QR-код
}

// Page - данные для шаблона страницы с формой.
type Page struct {
	Type        string
	Fields      payload.Fields
	Size        string
	Margin      string
	Types       []Option
	Encryptions []Option
	ECCLevels   []Option
	Errors      []string
	Warning     string
	Result      *Result
}

// Value - прежнее значение поля формы.
func (p Page) Value(name string) string {
	return p.Fields.Get(name)
}

// Checked - был ли установлен флажок.
func (p Page) Checked(name string) bool {
	v := p.Fields.Get(name)
	return v != "" && v != "0"
}

func options(values, labels []string, selected string) []Option {
	opts := make([]Option, 0, len(values))
	for i, v := range values {
		opts = append(opts, Option{Value: v, Label: labels[i], Selected: v == selected})
	}
	return opts
}

// newPage - заполняет страницу прежним вводом пользователя.
// Пустые fields соответствуют только что открытой форме.
func newPage(fields payload.Fields, warning string) Page {
	selectedType := payload.ParseType(fields.Get(payload.FieldType)).String()

	encryption := strings.ToUpper(fields.Get(payload.FieldWifiEncryption))
	if encryption == "" {
		encryption = "WPA"
	}
	ecc := strings.ToUpper(fields.Get(fieldECC))
	if ecc == "" {
		ecc = render.DefaultECC
	}
	size := fields.Get(fieldSize)
	if size == "" {
		size = strconv.Itoa(render.DefaultSize)
	}
	margin := fields.Get(fieldMargin)
	if margin == "" {
		margin = strconv.Itoa(render.DefaultMargin)
	}

	return Page{
		Type:   selectedType,
		Fields: fields,
		Size:   size,
		Margin: margin,
		Types: options(
			[]string{payload.TagURL, payload.TagWIFI, payload.TagTEXT, payload.TagEMAIL, payload.TagSMS, payload.TagGEO},
			[]string{"Link / URL", "WiFi", "Text", "Email", "SMS", "Geo location"},
			selectedType,
		),
		Encryptions: options(
			[]string{"WPA", "WPA2", "WEP", "NOPASS"},
			[]string{"WPA/WPA2", "WPA2", "WEP", "No password"},
			encryption,
		),
		ECCLevels: options(
			[]string{"L", "M", "Q", "H"},
			[]string{"L (7%)", "M (15%)", "Q (25%)", "H (30%)"},
			ecc,
		),
		Warning: warning,
	}
}

// writePage - выполняет шаблон и отправляет страницу с указанным статусом.
func writePage(res http.ResponseWriter, req *http.Request, status int, page Page) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		logger.ServerLog.Error("execute page template error", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		http.Error(res, fmt.Errorf("execute page template error, %w", err).Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.WriteHeader(status)
	if _, err := res.Write(buf.Bytes()); err != nil {
		logger.ServerLog.Error("write page error", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
	}
}

// parseOption - целое значение параметра формы, при некорректном вводе возвращается def.
func parseOption(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// RenderOptions - параметры отрисовки из полей формы, ограниченные допустимыми значениями.
func RenderOptions(fields payload.Fields) render.Options {
	return render.Options{
		Size:   parseOption(fields.Get(fieldSize), render.DefaultSize),
		Margin: parseOption(fields.Get(fieldMargin), render.DefaultMargin),
		ECC:    fields.Get(fieldECC),
	}.Normalize()
}

// Index - хэндлер, который отдает пустую форму.
// warning - сообщение об ошибке подключения к БД при старте, показывается на каждой странице.
func Index(res http.ResponseWriter, req *http.Request, warning string) {
	writePage(res, req, http.StatusOK, newPage(nil, warning))
}

// IndexHandler - обертка над Index.
func IndexHandler(warning string) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		Index(res, req, warning)
	}
	return fn
}

// Generate - хэндлер для построения QR-кода по данным формы.
// Ошибка проверки данных возвращает форму со статусом 422, ошибка отрисовки - со статусом 502.
// Ошибка записи в журнал не отменяет результат и показывается как предупреждение.
// jour может быть nil, если журнал не настроен.
func Generate(res http.ResponseWriter, req *http.Request, renderer render.Renderer, jour journal.Journal, warning string) {
	if err := req.ParseForm(); err != nil {
		logger.ServerLog.Error("failed to parse form", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		http.Error(res, fmt.Errorf("failed to parse form, %w", err).Error(), http.StatusBadRequest)
		return
	}
	fields := payload.FieldsFromForm(req.PostForm)
	page := newPage(fields, warning)
	qrType := payload.ParseType(fields.Get(payload.FieldType))

	// Строю содержимое QR-кода
	content, err := builder.BuildType(qrType, fields)
	if err != nil {
		var vErr *payload.ValidationError
		if errors.As(err, &vErr) {
			metrics.PayloadRejected.WithLabelValues(qrType.String()).Inc()
			logger.ServerLog.Debug("payload validation failed", zap.String("address", req.URL.String()),
				zap.String("type", qrType.String()), zap.String("reason", vErr.Message))
			page.Errors = append(page.Errors, vErr.Message)
			writePage(res, req, http.StatusUnprocessableEntity, page)
			return
		}
		logger.ServerLog.Error("build payload error", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		http.Error(res, fmt.Errorf("build payload error, %w", err).Error(), http.StatusInternalServerError)
		return
	}
	metrics.PayloadBuilt.WithLabelValues(qrType.String()).Inc()
	page.Result = &Result{Data: content.Data}

	// Получаю изображение от сервиса отрисовки
	start := time.Now()
	image, err := renderer.Render(req.Context(), content.Data, RenderOptions(fields))
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RenderFailures.Inc()
		logger.ServerLog.Error("render qr code error", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		page.Errors = append(page.Errors, MsgRenderFailed)
		writePage(res, req, http.StatusBadGateway, page)
		return
	}
	page.Result.Image = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(image))

	// Записываю метаинформацию запроса в журнал
	if jour != nil {
		if err := logRequest(req, jour, content); err != nil {
			metrics.JournalFailures.Inc()
			logger.ServerLog.Error("journal request error", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
			page.Errors = append(page.Errors, MsgJournalFailed)
		}
	}

	writePage(res, req, http.StatusOK, page)
	logger.ServerLog.Debug("successful build qr code", zap.String("type", qrType.String()))
}

func logRequest(req *http.Request, jour journal.Journal, content payload.ContentPayload) error {
	requestID, err := id.GenerateRequestID()
	if err != nil {
		return fmt.Errorf("failed to generate request id, %w", err)
	}
	qrType, _ := content.Meta.Get("type")
	tag, _ := qrType.(string)

	err = jour.Log(req.Context(), journal.Entry{
		ID:   requestID,
		Type: tag,
		Meta: content.Meta,
	})
	if err != nil {
		return fmt.Errorf("log request error, %w", err)
	}
	logger.ServerLog.Debug("request written to journal", zap.String("request_id", requestID),
		zap.String("type", tag), zap.Strings("meta_keys", content.Meta.Keys()))
	return nil
}

// GenerateHandler - обертка над Generate.
func GenerateHandler(renderer render.Renderer, jour journal.Journal, warning string) http.HandlerFunc {
	fn := func(res http.ResponseWriter, req *http.Request) {
		Generate(res, req, renderer, jour, warning)
	}
	return fn
}

// apiError - тело ответа API при ошибке проверки.
type apiError struct {
	Error string `json:"error"`
}

func writeJSON(res http.ResponseWriter, req *http.Request, status int, v any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(v); err != nil {
		logger.ServerLog.Error("failed to encode response", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
	}
}

// fieldsFromJSON - приводит значения json объекта к строкам полей формы.
// Числа сохраняют исходную запись, true и false соответствуют установленному и снятому флажку,
// null - пустому полю. Вложенные объекты и массивы не допускаются.
func fieldsFromJSON(body io.Reader) (payload.Fields, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json error, %w", err)
	}

	fields := make(payload.Fields, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			fields[k] = ""
		case string:
			fields[k] = val
		case bool:
			if val {
				fields[k] = "1"
			} else {
				fields[k] = "0"
			}
		case json.Number:
			fields[k] = val.String()
		default:
			return nil, fmt.Errorf("field %s must be a scalar value", k)
		}
	}
	return fields, nil
}

// BuildPayload - хэндлер JSON API, который только строит содержимое QR-кода без отрисовки.
// Тело запроса - json объект с теми же полями, что и форма, значения - строки, числа, true/false или null.
func BuildPayload(res http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	fields, err := fieldsFromJSON(req.Body)
	if err != nil {
		logger.ServerLog.Error("failed to parse fields from request", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		http.Error(res, fmt.Errorf("failed to parse fields from request, %w", err).Error(), http.StatusBadRequest)
		return
	}
	qrType := payload.ParseType(fields.Get(payload.FieldType))

	content, err := builder.BuildType(qrType, fields)
	if err != nil {
		var vErr *payload.ValidationError
		if errors.As(err, &vErr) {
			metrics.PayloadRejected.WithLabelValues(qrType.String()).Inc()
			writeJSON(res, req, http.StatusUnprocessableEntity, apiError{Error: vErr.Message})
			return
		}
		logger.ServerLog.Error("build payload error", zap.String("address", req.URL.String()), zap.String("error", err.Error()))
		http.Error(res, fmt.Errorf("build payload error, %w", err).Error(), http.StatusInternalServerError)
		return
	}
	metrics.PayloadBuilt.WithLabelValues(qrType.String()).Inc()

	writeJSON(res, req, http.StatusOK, content)
}

// BuildPayloadHandler - обертка над BuildPayload.
func BuildPayloadHandler() http.HandlerFunc {
	return BuildPayload
}

// AssetsHandler - отдает встроенные статические файлы, префикс пути prefix отбрасывается.
func AssetsHandler(prefix string) (http.HandlerFunc, error) {
	assets, err := web.Assets()
	if err != nil {
		return nil, fmt.Errorf("load assets error, %w", err)
	}
	h := http.StripPrefix(prefix, http.FileServer(http.FS(assets)))
	return h.ServeHTTP, nil
}

// HandleOtherRequest - обработка нераспознанных http запросов к сервису.
func HandleOtherRequest() http.HandlerFunc {
	return func(res http.ResponseWriter, _ *http.Request) {
		res.Header().Set("Content-Type", "text/plain")
		res.WriteHeader(http.StatusNotFound)
	}
}
