package mediaurl

import (
	"sort"
	"sync"
)

// PreviewRegistry владеет временными превью-ссылками одной формы.
//
// Ссылка регистрируется при выборе файла (Acquire), освобождается при замене
// (Replace), закрытии формы или уничтожении владельца (ReleaseAll). Ссылка,
// которую сейчас показывает уже сохраненная запись (inUse == true), не
// освобождается и остается в реестре до следующей попытки.
//
// Каждая ссылка передается в release не более одного раза.
type PreviewRegistry struct {
	mu      sync.Mutex
	refs    map[string]struct{}
	release func(ref string)
	inUse   func(ref string) bool
}

// NewPreviewRegistry - release освобождает ресурс ссылки, inUse проверяет список
// сохраненных записей. inUse не должен вызывать методы реестра.
func NewPreviewRegistry(release func(ref string), inUse func(ref string) bool) *PreviewRegistry {
	if inUse == nil {
		inUse = func(string) bool { return false }
	}
	return &PreviewRegistry{
		refs:    make(map[string]struct{}),
		release: release,
		inUse:   inUse,
	}
}

// Acquire начинает отслеживать ссылку. Повторный Acquire ничего не меняет.
func (r *PreviewRegistry) Acquire(ref string) {
	if ref == "" {
		return
	}
	r.mu.Lock()
	r.refs[ref] = struct{}{}
	r.mu.Unlock()
}

// Release освобождает ссылку. false - ссылка не отслеживается (уже освобождена)
// либо еще отображается сохраненной записью.
func (r *PreviewRegistry) Release(ref string) bool {
	r.mu.Lock()
	if _, ok := r.refs[ref]; !ok || r.inUse(ref) {
		r.mu.Unlock()
		return false
	}
	delete(r.refs, ref)
	r.mu.Unlock()

	if r.release != nil {
		r.release(ref)
	}
	return true
}

// Replace - пользователь выбрал новый файл вместо old
func (r *PreviewRegistry) Replace(old, next string) {
	if old != "" && old != next {
		r.Release(old)
	}
	r.Acquire(next)
}

// ReleaseAll освобождает все ссылки, кроме используемых. Возвращает число освобожденных.
func (r *PreviewRegistry) ReleaseAll() int {
	r.mu.Lock()
	var freed []string
	for ref := range r.refs {
		if r.inUse(ref) {
			continue
		}
		delete(r.refs, ref)
		freed = append(freed, ref)
	}
	r.mu.Unlock()

	if r.release != nil {
		for _, ref := range freed {
			r.release(ref)
		}
	}
	return len(freed)
}

// Tracked - отслеживаемые ссылки, отсортированные
func (r *PreviewRegistry) Tracked() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.refs))
	for ref := range r.refs {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

func (r *PreviewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.refs)
}
