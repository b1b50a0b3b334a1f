// Package localization отдает локализованные строки по ключу с подстановкой
// именованных аргументов. Ядро никогда не форматирует пользовательский текст
// напрямую — только собирает аргументы (количества, суммы, списки).
package localization

import (
	"strings"

	"golang.org/x/text/language"
)

// Localization — связка языка пользователя с бандлом строк и постоянными
// подстановками (имя пользователя и т.п.).
type Localization struct {
	language     string
	fallback     string
	replacements map[string]string
}

type Args struct {
	Language string
	Fallback string
	// Replacements подставляются в каждую строку: {user_string}, {user_mention} и т.д.
	Replacements map[string]string
}

func New(args Args) *Localization {
	return &Localization{
		language:     args.Language,
		fallback:     args.Fallback,
		replacements: args.Replacements,
	}
}

func (l *Localization) Language() string {
	return l.language
}

// Get возвращает строку по ключу. kv — чередующиеся пары имя/значение для
// подстановки в плейсхолдеры вида {name}. Отсутствующий в языке ключ ищется
// в fallback-языке; отсутствующий везде — возвращается как есть, чтобы дыру
// было видно в чате, а не в панике.
func (l *Localization) Get(key string, kv ...string) string {
	s, ok := bundle(l.language)[key]
	if !ok {
		s, ok = bundle(l.fallback)[key]
	}
	if !ok {
		return key
	}
	for i := 0; i+1 < len(kv); i += 2 {
		s = strings.ReplaceAll(s, "{"+kv[i]+"}", kv[i+1])
	}
	for name, value := range l.replacements {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}

// BoolEmoji рендерит булево значение для инлайн-кнопок прав админа.
func (l *Localization) BoolEmoji(v bool) string {
	if v {
		return "🟢"
	}
	return "🔴"
}

func bundle(lang string) map[string]string {
	if b, ok := bundles[lang]; ok {
		return b
	}
	return bundles["en"]
}

var bundles = map[string]map[string]string{
	"en": stringsEN,
	"ru": stringsRU,
}

// Match выбирает ближайший включенный язык для языка пользователя. Если ничего
// похожего не включено, возвращает def.
func Match(lang string, enabled []string, def string) string {
	if lang == "" {
		return def
	}
	tags := make([]language.Tag, 0, len(enabled))
	for _, e := range enabled {
		tag, err := language.Parse(e)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return def
	}
	userTag, err := language.Parse(lang)
	if err != nil {
		return def
	}
	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(userTag)
	if confidence == language.No {
		return def
	}
	return enabled[index]
}
