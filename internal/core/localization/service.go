package localization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// 永続化キーです。
const (
	KeyLanguage           = "language"
	translationsKeyPrefix = "translations_"
)

var (
	ErrUnsupportedLanguage = errors.New("localization: unsupported language")
	ErrLengthMismatch      = errors.New("localization: translator returned a different number of texts")
)

// TranslationsKey は言語ごとの翻訳キャッシュのキーを返します。
func TranslationsKey(lang string) string {
	return translationsKeyPrefix + lang
}

// Store は言語設定と翻訳キャッシュを保存するキーバリューストアです。
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Translator は文字列の一括翻訳を行います。戻り値は入力と同じ順序・件数です。
type Translator interface {
	TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error)
}

// Options は Service の設定です。
type Options struct {
	DefaultLanguage string
	Languages       []string
	BatchSize       int
	Concurrency     int
	Logger          *slog.Logger
}

const (
	defaultBatchSize   = 25
	defaultConcurrency = 4
)

// Service は UI 文言を現在の言語で引き当てます。
type Service struct {
	store      Store
	translator Translator
	logger     *slog.Logger
	batchSize  int
	workers    int

	catalog   map[string]string
	keys      []string
	supported map[string]struct{}
	languages []string
	fallback  string

	switchMu sync.Mutex

	mu      sync.RWMutex
	current string
	active  map[string]string
	cache   map[string]map[string]string
	loading bool
}

// NewService は Service を生成します。translator が nil の場合、英語以外は原文で表示します。
func NewService(store Store, translator Translator, opts Options) (*Service, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{SourceLanguage}
	}

	s := &Service{
		store:      store,
		translator: translator,
		logger:     opts.Logger,
		batchSize:  opts.BatchSize,
		workers:    opts.Concurrency,
		catalog:    Catalog(),
		supported:  make(map[string]struct{}, len(opts.Languages)+1),
		cache:      make(map[string]map[string]string),
	}
	for key := range s.catalog {
		s.keys = append(s.keys, key)
	}
	sort.Strings(s.keys)

	for _, raw := range append([]string{SourceLanguage}, opts.Languages...) {
		lang, err := canonical(raw)
		if err != nil {
			return nil, fmt.Errorf("localization: language %q: %w", raw, err)
		}
		if _, dup := s.supported[lang]; dup {
			continue
		}
		s.supported[lang] = struct{}{}
		s.languages = append(s.languages, lang)
	}

	fallback := SourceLanguage
	if opts.DefaultLanguage != "" {
		lang, err := s.resolve(opts.DefaultLanguage)
		if err != nil {
			return nil, err
		}
		fallback = lang
	}
	s.fallback = fallback
	s.current = SourceLanguage
	s.active = s.catalog
	return s, nil
}

func canonical(raw string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	base, _ := tag.Base()
	return base.String(), nil
}

func (s *Service) resolve(raw string) (string, error) {
	lang, err := canonical(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
	if _, ok := s.supported[lang]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
	return lang, nil
}

// Load は保存済みの言語設定(なければ既定言語)を有効にします。
func (s *Service) Load(ctx context.Context) error {
	lang := s.fallback
	saved, ok, err := s.store.Get(ctx, KeyLanguage)
	if err != nil {
		s.logger.Warn("localization: read saved language failed", "err", err)
	} else if ok {
		if resolved, err := s.resolve(saved); err == nil {
			lang = resolved
		} else {
			s.logger.Warn("localization: ignoring saved language", "language", saved)
		}
	}
	return s.activate(ctx, lang, false)
}

// SetLanguage は表示言語を切り替えます。翻訳の準備中は以前の言語の文言を返し続けます。
func (s *Service) SetLanguage(ctx context.Context, raw string) error {
	lang, err := s.resolve(raw)
	if err != nil {
		return err
	}
	return s.activate(ctx, lang, true)
}

func (s *Service) activate(ctx context.Context, lang string, persist bool) error {
	s.switchMu.Lock()
	defer s.switchMu.Unlock()

	s.mu.Lock()
	if _, cached := s.cache[lang]; lang == s.current && !s.loading && (cached || lang == SourceLanguage) {
		s.mu.Unlock()
		return nil
	}
	previous := s.current
	s.current = lang
	s.loading = true
	s.mu.Unlock()

	if persist {
		if err := s.store.Set(ctx, KeyLanguage, lang); err != nil {
			s.logger.Warn("localization: save language failed", "language", lang, "err", err)
		}
	}

	translations, err := s.translationsFor(ctx, lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.current = previous
		return err
	}
	s.active = translations
	return nil
}

func (s *Service) translationsFor(ctx context.Context, lang string) (map[string]string, error) {
	if lang == SourceLanguage {
		return s.catalog, nil
	}

	s.mu.RLock()
	cached, ok := s.cache[lang]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	if stored, ok := s.readCache(ctx, lang); ok {
		s.remember(lang, stored)
		return stored, nil
	}

	translated, complete, err := s.translateCatalog(ctx, lang)
	if err != nil {
		return nil, err
	}
	if !complete {
		return translated, nil
	}
	s.remember(lang, translated)
	if b, err := json.Marshal(translated); err == nil {
		if err := s.store.Set(ctx, TranslationsKey(lang), string(b)); err != nil {
			s.logger.Warn("localization: cache translations failed", "language", lang, "err", err)
		}
	}
	return translated, nil
}

func (s *Service) readCache(ctx context.Context, lang string) (map[string]string, bool) {
	raw, ok, err := s.store.Get(ctx, TranslationsKey(lang))
	if err != nil {
		s.logger.Warn("localization: read cached translations failed", "language", lang, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var stored map[string]string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("localization: discarding malformed cached translations", "language", lang, "err", err)
		return nil, false
	}
	merged := make(map[string]string, len(s.catalog))
	for key, text := range s.catalog {
		merged[key] = text
		if translated := stored[key]; translated != "" {
			merged[key] = translated
		}
	}
	return merged, true
}

func (s *Service) remember(lang string, translations map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[lang] = translations
}

// translateCatalog はカタログを batchSize 件ずつ並行に翻訳します。
// 失敗したバッチは原文のまま残し、complete=false を返します。
func (s *Service) translateCatalog(ctx context.Context, lang string) (map[string]string, bool, error) {
	if s.translator == nil {
		s.logger.Warn("localization: no translator configured, using source text", "language", lang)
		return s.catalog, false, nil
	}

	texts := make([]string, len(s.keys))
	for i, key := range s.keys {
		texts[i] = s.catalog[key]
	}
	results := append([]string(nil), texts...)

	var (
		failedMu sync.Mutex
		failed   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for start := 0; start < len(texts); start += s.batchSize {
		end := min(start+s.batchSize, len(texts))
		g.Go(func() error {
			batch := texts[start:end]
			out, err := s.translator.TranslateBatch(gctx, batch, lang)
			if err == nil && len(out) != len(batch) {
				err = ErrLengthMismatch
			}
			if err != nil {
				s.logger.Warn("localization: translation batch failed, keeping source text", "language", lang, "from", start, "to", end, "err", err)
				failedMu.Lock()
				failed++
				failedMu.Unlock()
				return nil
			}
			for i, text := range out {
				if strings.TrimSpace(text) != "" {
					results[start+i] = text
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	translated := make(map[string]string, len(s.keys))
	for i, key := range s.keys {
		translated[key] = results[i]
	}
	return translated, failed == 0, nil
}

// T は現在の言語での文言を返します。未翻訳なら原文、未知のキーならキーそのものを返します。
func (s *Service) T(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if text := s.active[key]; text != "" {
		return text
	}
	if text, ok := s.catalog[key]; ok {
		return text
	}
	return key
}

// Format は T の結果の {name} を vars で置換します。
func (s *Service) Format(key string, vars map[string]string) string {
	text := s.T(key)
	if len(vars) == 0 {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Translations は現在の言語の全文言の複製を返します。
func (s *Service) Translations() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.catalog))
	for key, text := range s.catalog {
		out[key] = text
	}
	for key, text := range s.active {
		if text != "" {
			out[key] = text
		}
	}
	return out
}

// Language は現在の言語を返します。
func (s *Service) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Loading は翻訳の準備中かどうかを返します。
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Languages は利用可能な言語を返します。
func (s *Service) Languages() []string {
	return append([]string(nil), s.languages...)
}

// ClearCache は全言語の翻訳キャッシュを削除します。表示中の文言は変わりません。
func (s *Service) ClearCache(ctx context.Context) error {
	s.mu.Lock()
	s.cache = make(map[string]map[string]string)
	s.mu.Unlock()

	var errs []error
	for _, lang := range s.languages {
		if lang == SourceLanguage {
			continue
		}
		if err := s.store.Remove(ctx, TranslationsKey(lang)); err != nil {
			errs = append(errs, fmt.Errorf("localization: remove %s: %w", TranslationsKey(lang), err))
		}
	}
	return errors.Join(errs...)
}
