// Package mediaurl приводит хранимые пути к медиа к отображаемому URL.
//
// Значение поля image/logo/fileUrl бывает трех видов:
//   - локальное превью ("blob:..."), живет только в рамках формы;
//   - путь на сервере ("/uploads/<type>/<file>"), его надо дополнить origin API;
//   - уже абсолютный URL ("https://...", "data:...", "//cdn/...").
package mediaurl

import (
	"net/url"
	"strings"
)

// DefaultUploadPrefix - префикс, под которым сервер отдает загруженные файлы
const DefaultUploadPrefix = "/uploads/"

type Kind int

const (
	KindEmpty Kind = iota
	KindPreview
	KindServerRelative
	KindAbsolute
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPreview:
		return "preview"
	case KindServerRelative:
		return "server-relative"
	case KindAbsolute:
		return "absolute"
	default:
		return "other"
	}
}

// Classify определяет вид значения для префикса DefaultUploadPrefix
func Classify(v string) Kind {
	return ClassifyWithPrefix(v, DefaultUploadPrefix)
}

func ClassifyWithPrefix(v, uploadPrefix string) Kind {
	v = strings.TrimSpace(v)
	if v == "" {
		return KindEmpty
	}
	lower := strings.ToLower(v)

	switch {
	case strings.HasPrefix(lower, "blob:"):
		return KindPreview
	case strings.HasPrefix(lower, "data:"):
		return KindAbsolute
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(v)
		if err != nil || u.Host == "" {
			return KindOther
		}
		return KindAbsolute
	case strings.HasPrefix(v, "//"):
		if len(v) == 2 {
			return KindOther
		}
		return KindAbsolute
	}

	if HasUploadPrefix(v, uploadPrefix) {
		return KindServerRelative
	}
	return KindOther
}

// HasUploadPrefix - p лежит под uploadPrefix и не равен самому префиксу.
// Префикс сравнивается без учета крайних "/": "/media", "media/" и "/media/" равны.
func HasUploadPrefix(p, uploadPrefix string) bool {
	prefix := "/" + strings.Trim(uploadPrefix, "/") + "/"
	return strings.HasPrefix(p, prefix) && len(p) > len(prefix)
}

// Storable - можно ли сохранить значение в записи. Превью не переживает перезагрузку страницы.
func Storable(v string) bool {
	switch Classify(v) {
	case KindAbsolute, KindServerRelative:
		return true
	default:
		return false
	}
}

// Resolve возвращает URL для отображения. Серверный путь дополняется origin,
// превью и абсолютные URL возвращаются как есть.
func Resolve(v, origin string) string {
	return ResolveWithPrefix(v, origin, DefaultUploadPrefix)
}

// ResolveWithPrefix - Resolve для сервера, который отдает файлы под uploadPrefix
func ResolveWithPrefix(v, origin, uploadPrefix string) string {
	if ClassifyWithPrefix(v, uploadPrefix) != KindServerRelative {
		return v
	}
	origin = strings.TrimRight(origin, "/")
	if origin == "" {
		return v
	}
	return origin + v
}
