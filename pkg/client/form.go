package client

import (
	"bytes"
	"context"
	"sync"

	"irrigation_backend/pkg/mediaurl"

	"github.com/google/uuid"
)

// FormSession - одно открытое окно редактирования с полем картинки/файла.
//
// Выбранный файл сначала живет как превью "blob:<uuid>": его можно показать,
// но нельзя сохранить в записи. Commit загружает файл и возвращает путь для
// записи. Превью освобождаются при замене файла, после Commit и в Close.
type FormSession struct {
	client     *Client
	uploadType string
	previews   *mediaurl.PreviewRegistry

	mu      sync.Mutex
	files   map[string]selectedFile
	current string
}

type selectedFile struct {
	name string
	data []byte
}

// NewFormSession - inUse сообщает, что превью показывает уже сохраненная запись
// (например, оптимистично добавленная в список); такое превью не освобождается.
func (c *Client) NewFormSession(uploadType string, inUse func(ref string) bool) *FormSession {
	s := &FormSession{
		client:     c,
		uploadType: uploadType,
		files:      make(map[string]selectedFile),
	}
	s.previews = mediaurl.NewPreviewRegistry(s.drop, inUse)
	return s
}

// Open - форма открыта для существующей записи с сохраненным путем
func (s *FormSession) Open(stored string) {
	s.mu.Lock()
	s.current = stored
	s.mu.Unlock()
}

// Select - пользователь выбрал файл. Возвращает ссылку на превью, она же
// становится текущим значением поля. Предыдущее превью освобождается.
func (s *FormSession) Select(fileName string, data []byte) string {
	ref := "blob:" + uuid.NewString()

	s.mu.Lock()
	s.files[ref] = selectedFile{name: fileName, data: data}
	prev := s.current
	s.current = ref
	s.mu.Unlock()

	if mediaurl.Classify(prev) == mediaurl.KindPreview {
		s.previews.Replace(prev, ref)
	} else {
		s.previews.Acquire(ref)
	}
	return ref
}

// Current - значение поля в форме: превью, сохраненный путь или пусто
func (s *FormSession) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Display - URL для <img>: серверный путь дополняется origin
func (s *FormSession) Display(origin string) string {
	return mediaurl.ResolveWithPrefix(s.Current(), origin, s.client.uploadPrefix)
}

// Commit возвращает значение, которое можно записать в сущность. Если выбран
// новый файл, он загружается, и поле переключается на полученный путь.
func (s *FormSession) Commit(ctx context.Context) (string, error) {
	s.mu.Lock()
	ref := s.current
	file, pending := s.files[ref]
	s.mu.Unlock()

	if !pending {
		return ref, nil
	}

	uploaded, err := s.client.Upload(ctx, s.uploadType, file.name, bytes.NewReader(file.data))
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.current == ref {
		s.current = uploaded.FilePath
	}
	s.mu.Unlock()

	s.previews.Release(ref)
	return uploaded.FilePath, nil
}

// Close - форма закрыта. Возвращает число освобожденных превью.
func (s *FormSession) Close() int {
	return s.previews.ReleaseAll()
}

// Pending - превью, которые еще держит форма
func (s *FormSession) Pending() []string {
	return s.previews.Tracked()
}

func (s *FormSession) drop(ref string) {
	s.mu.Lock()
	delete(s.files, ref)
	s.mu.Unlock()
}
