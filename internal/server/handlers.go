package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/GillesH-web/Pythagore/internal/calendar"
	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/GillesH-web/Pythagore/internal/locale"
	"github.com/GillesH-web/Pythagore/internal/render"
)

// ErrorResponse is the body of every 4xx answer.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// query is a parsed and validated request. It doubles as the memo key.
type query struct {
	Route    string       `json:"route"`
	Input    engine.Input `json:"input"`
	Variant  string       `json:"variant"`
	Traits   bool         `json:"traits"`
	Lang     string       `json:"lang"`
	Reminder string       `json:"reminder,omitempty"`
}

func (q query) options() engine.Options {
	return engine.Options{
		Variant:       engine.Variants[q.Variant],
		IncludeTraits: q.Traits,
	}
}

func (q query) key() string {
	raw, _ := json.Marshal(q)
	hash := sha256.Sum256(raw)
	return config.CacheKeyPrefix + hex.EncodeToString(hash[:])
}

// parseQuery reads the form fields of r. Violations map a field to a
// translation key, as engine.ValidateInput does.
func (s *ReportServer) parseQuery(r *http.Request) (query, engine.Violations) {
	v := r.URL.Query()
	q := query{
		Route: r.URL.Path,
		Input: engine.Input{
			FirstName1: v.Get(config.FieldFirstName1),
			FirstName2: v.Get(config.FieldFirstName2),
			FirstName3: v.Get(config.FieldFirstName3),
			LastName:   v.Get(config.FieldLastName),
			LastName2:  v.Get(config.FieldLastName2),
			LastName3:  v.Get(config.FieldLastName3),
			BirthDate:  strings.TrimSpace(v.Get(config.FieldBirthDate)),
		},
		Lang:     requestLang(r, v),
		Traits:   config.DefaultTraits,
		Reminder: strings.TrimSpace(v.Get(config.QueryReminder)),
	}

	violations := engine.ValidateInput(q.Input, s.Clock)

	variant, err := engine.ParseVariant(v.Get(config.FieldVariant))
	if err != nil {
		violations[config.FieldVariant] = config.TKeyErrInvalid
	}
	q.Variant = variant.Name

	if raw := v.Get(config.FieldTraits); raw != "" {
		traits, err := strconv.ParseBool(raw)
		if err != nil {
			violations[config.FieldTraits] = config.TKeyErrInvalid
		}
		q.Traits = traits
	}

	if err := calendar.ValidateTrigger(q.Reminder); err != nil {
		violations[config.QueryReminder] = config.TKeyErrInvalid
	}

	return q, violations
}

// requestLang prefers an explicit lang parameter over Accept-Language.
func requestLang(r *http.Request, v url.Values) string {
	lang := strings.ToLower(strings.TrimSpace(v.Get(config.FieldLang)))
	if slices.Contains(config.SupportedLanguages, lang) {
		return lang
	}
	return locale.Match(r.Header.Get(config.HeaderAcceptLanguage))
}

// handleReport serves the JSON report of the queried person.
func (s *ReportServer) handleReport(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	q, ok := s.validQuery(w, r)
	if !ok {
		return
	}

	item, err := s.memo(q.key(), func() (*cacheItem, error) {
		report, err := engine.Calculate(q.Input, q.options())
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := render.JSON(&buf, report); err != nil {
			return nil, err
		}
		return newCacheItem(buf.Bytes(), config.MimeJSON, q.Lang), nil
	})
	if err != nil {
		s.internalError(w, err)
		return
	}

	slog.Debug(config.MsgCalcDone,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, q.Route,
		config.LogKeyVariant, q.Variant,
	)
	serve(w, r, item)
}

// handleCalendar serves the phase transitions of the queried person as ICS.
func (s *ReportServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	q, ok := s.validQuery(w, r)
	if !ok {
		return
	}

	item, err := s.memo(q.key(), func() (*cacheItem, error) {
		report, err := engine.Calculate(q.Input, q.options())
		if err != nil {
			return nil, err
		}
		tr, err := locale.New(q.Lang)
		if err != nil {
			return nil, err
		}
		entries := render.Entries([]render.Document{{Person: q.Input, Report: report}})
		data, _, err := render.NewCalendar(tr, s.Clock, q.Reminder).Generate(r.Context(), entries)
		if err != nil {
			return nil, err
		}
		return newCacheItem(data, config.MimeTextCalendar, q.Lang), nil
	})
	if err != nil {
		s.internalError(w, err)
		return
	}
	serve(w, r, item)
}

func (s *ReportServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte(config.MsgHealthOK))
	}
}

// validQuery parses r and answers 400 with localized details on violations.
func (s *ReportServer) validQuery(w http.ResponseWriter, r *http.Request) (query, bool) {
	q, violations := s.parseQuery(r)
	if violations.Empty() {
		return q, true
	}

	tr, err := locale.New(q.Lang)
	if err != nil {
		s.internalError(w, err)
		return q, false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   tr.Msg(config.TKeyErrInvalid),
		Details: tr.Violations(violations),
	})
	return q, false
}

func (s *ReportServer) internalError(w http.ResponseWriter, err error) {
	slog.Error(config.ErrCalculation,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyError, err,
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, config.HTTPMsgEncodeError, http.StatusInternalServerError)
		return
	}
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
